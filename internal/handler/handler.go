package handler

import (
	"github.com/resilia-ai/backend/internal/service"
)

// Handler holds the services the chat endpoints depend on.
type Handler struct {
	chat    *service.ChatService
	history *service.HistoryService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Chat    *service.ChatService
	History *service.HistoryService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		chat:    deps.Chat,
		history: deps.History,
	}
}
