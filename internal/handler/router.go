package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/resilia-ai/backend/internal/middleware"
)

// NewRouter wires HTTP routes to the chat services.
func NewRouter(deps Deps) http.Handler {
	h := New(deps)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/chat", func(api chi.Router) {
		api.Use(middleware.Identity)
		api.Post("/message", h.handleSendMessage)
		api.Get("/conversations", h.handleListConversations)
		api.Get("/conversations/{conversationID}/messages", h.handleListMessages)
	})

	return r
}
