package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"kanban/internal/config"
	"kanban/internal/logger"
	"kanban/internal/service"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth   service.AuthService
	board  service.BoardService
	card   service.CardService
	cfg    *config.Config
	health Pinger
}

func New(auth service.AuthService, board service.BoardService, card service.CardService, cfg *config.Config, health Pinger) *Handler {
	return &Handler{auth, board, card, cfg, health}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
