package storage

import (
	"context"
	"testing"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example", "tournaments/a.json", "https://cdn.example/tournaments/a.json"},
		{"https://cdn.example/", "/tournaments/a.json", "https://cdn.example/tournaments/a.json"},
		{"https://cdn.example/exports", "tournaments/a.json", "https://cdn.example/exports/tournaments/a.json"},
		{"", "tournaments/a.json", ""},
		{"https://cdn.example", "", ""},
	}
	for _, tt := range tests {
		if got := publicURL(tt.base, tt.key); got != tt.want {
			t.Errorf("publicURL(%q, %q) = %q, want %q", tt.base, tt.key, got, tt.want)
		}
	}
}

func TestNewCloudflareR2UploaderRequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	if err == nil {
		t.Fatal("expected an error for incomplete configuration")
	}
}
