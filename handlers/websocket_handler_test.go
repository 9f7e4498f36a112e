package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/poule-tournament/brackets"
	"github.com/Dosada05/poule-tournament/models"
	"github.com/Dosada05/poule-tournament/repositories"
	"github.com/Dosada05/poule-tournament/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type spectatorMessage struct {
	Type    string            `json:"type"`
	Payload models.Tournament `json:"payload"`
	RoomID  string            `json:"room_id"`
}

func readSpectatorMessage(t *testing.T, conn *websocket.Conn) spectatorMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read websocket message: %v", err)
	}
	var msg spectatorMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode websocket message: %v", err)
	}
	return msg
}

func TestWebSocketHandler_SpectatorFeed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := brackets.NewHub(newTestLogger())
	go hub.Run(ctx)

	svc := services.NewTournamentService(repositories.NewMemoryTournamentRepository(), nil, hub, brackets.SeededRandom(3), newTestLogger())
	tour, err := svc.CreateTournament(ctx, services.CreateTournamentInput{Name: "Live"})
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}

	router := chi.NewRouter()
	router.Get("/ws/tournaments/{tournamentID}", NewWebSocketHandler(hub, svc, newTestLogger()).ServeWs)
	server := httptest.NewServer(router)
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/tournaments/"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+tour.ID.String(), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	first := readSpectatorMessage(t, conn)
	if first.Type != services.EventTournamentUpdated || first.Payload.ID != tour.ID {
		t.Fatalf("first message = %+v, want current snapshot", first)
	}

	room := brackets.RoomForTournament(tour.ID.String())
	deadline := time.Now().Add(3 * time.Second)
	for hub.RoomSize(room) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("spectator never joined the room")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := svc.RegisterPlayers(ctx, tour.ID, []string{"Ann", "Ben"}); err != nil {
		t.Fatalf("RegisterPlayers: %v", err)
	}
	update := readSpectatorMessage(t, conn)
	if update.Type != services.EventTournamentUpdated || update.Payload.Phase != models.PhaseGroups || len(update.Payload.Players) != 2 {
		t.Errorf("update = %+v, want groups phase with 2 players", update)
	}
	if update.RoomID != room {
		t.Errorf("room = %q, want %q", update.RoomID, room)
	}
}

func TestWebSocketHandler_RejectsUnknownTournament(t *testing.T) {
	hub := brackets.NewHub(newTestLogger())
	svc := newTestService()
	router := chi.NewRouter()
	router.Get("/ws/tournaments/{tournamentID}", NewWebSocketHandler(hub, svc, newTestLogger()).ServeWs)

	tests := []struct {
		id   string
		want int
	}{
		{uuid.NewString(), http.StatusNotFound},
		{"42", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/tournaments/"+tt.id, nil))
		if rec.Code != tt.want {
			t.Errorf("id %q: status = %d, want %d", tt.id, rec.Code, tt.want)
		}
	}
}
