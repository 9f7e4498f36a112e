package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Dosada05/poule-tournament/brackets"
	"github.com/Dosada05/poule-tournament/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin проверяется CORS-настройками роутера.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub               *brackets.Hub
	tournamentService services.TournamentService
	logger            *slog.Logger
}

func NewWebSocketHandler(hub *brackets.Hub, ts services.TournamentService, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
		logger:            logger,
	}
}

// ServeWs подключает зрителя к комнате турнира: /ws/tournaments/{tournamentID}.
// Первым сообщением клиент получает текущий снимок турнира.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	id, err := getTournamentIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP-ошибку клиенту.
		h.logger.Warn("failed to upgrade websocket connection", slog.String("tournament_id", id.String()), slog.Any("error", err))
		return
	}

	roomID := brackets.RoomForTournament(id.String())
	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}

	snapshot, err := json.Marshal(brackets.WebSocketMessage{
		Type:    services.EventTournamentUpdated,
		Payload: tournament,
		RoomID:  roomID,
	})
	if err == nil {
		client.Send <- snapshot
	}

	if !h.hub.Join(client) {
		conn.Close()
		return
	}
	h.logger.Info("spectator connected", slog.String("room", roomID))

	go client.WritePump()
	go client.ReadPump()
}
