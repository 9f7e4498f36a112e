package routes

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/poule-tournament/brackets"
	"github.com/Dosada05/poule-tournament/handlers"
	"github.com/Dosada05/poule-tournament/repositories"
	"github.com/Dosada05/poule-tournament/services"
	"github.com/go-chi/chi/v5"
)

func newTestRouter(origins []string) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := brackets.NewHub(logger)
	svc := services.NewTournamentService(repositories.NewMemoryTournamentRepository(), nil, hub, brackets.SeededRandom(1), logger)

	router := chi.NewRouter()
	SetupRoutes(router, handlers.NewTournamentHandler(svc), handlers.NewWebSocketHandler(hub, svc, logger), origins)
	return router
}

func TestSetupRoutes_TournamentEndpoints(t *testing.T) {
	router := newTestRouter([]string{"*"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tournaments", strings.NewReader(`{"name":"Routes"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /tournaments: status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tournaments", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /tournaments: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/tournaments", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PATCH /tournaments: status = %d, want 405", rec.Code)
	}
}

func TestSetupRoutes_CORS(t *testing.T) {
	router := newTestRouter([]string{"https://poules.example"})

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"https://poules.example", "https://poules.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/tournaments", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want %q", tt.origin, got, tt.wantAllow)
		}
	}
}
