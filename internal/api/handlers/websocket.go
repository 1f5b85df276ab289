package handlers

import (
	"net/http"
	"slices"

	"github.com/asterah/chaos-full-nightmare/internal/logging"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/asterah/chaos-full-nightmare/internal/websocket"
	ws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
	upgrader    ws.Upgrader
	logger      *zap.Logger
}

func NewWebSocketHandler(hub *websocket.Hub, authService *service.AuthService, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	allowAny := slices.Contains(allowedOrigins, "*")
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAny || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// Browsers cannot set headers on the upgrade request
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", logging.Op("websocket.Handle"), zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
