package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"SERVER_PORT", "DATABASE_URL", "R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY",
	"R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL", "BACKUP_INTERVAL", "CORS_ALLOWED_ORIGINS", "RANDOM_SEED",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != 8080 || cfg.DatabaseURL != "" || cfg.R2Enabled() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.BackupInterval != time.Hour {
		t.Errorf("BackupInterval = %s", cfg.BackupInterval)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RandomSeed != nil {
		t.Errorf("RandomSeed = %d", *cfg.RandomSeed)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/poules")
	t.Setenv("BACKUP_INTERVAL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "bucket")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != 9090 || cfg.DatabaseURL == "" || !cfg.R2Enabled() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.BackupInterval != 15*time.Minute {
		t.Errorf("BackupInterval = %s", cfg.BackupInterval)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RandomSeed == nil || *cfg.RandomSeed != 42 {
		t.Errorf("RandomSeed = %v", cfg.RandomSeed)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"port not a number", "SERVER_PORT", "http", "SERVER_PORT"},
		{"port out of range", "SERVER_PORT", "70000", "SERVER_PORT"},
		{"bad interval", "BACKUP_INTERVAL", "soon", "BACKUP_INTERVAL"},
		{"negative interval", "BACKUP_INTERVAL", "-1m", "BACKUP_INTERVAL"},
		{"bad seed", "RANDOM_SEED", "-3", "RANDOM_SEED"},
		{"partial r2", "R2_BUCKET_NAME", "bucket", "R2 configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}
