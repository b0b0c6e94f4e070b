package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/resilia-ai/backend/internal/domain"
	"github.com/resilia-ai/backend/internal/middleware"
)

type sendMessageRequest struct {
	UserMessage    string `json:"userMessage"`
	ConversationID string `json:"conversationId"`
}

type sendMessageResponse struct {
	AIResponse      string `json:"aiResponse"`
	DetectedEmotion string `json:"detectedEmotion"`
	ConversationID  string `json:"conversationId"`
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.UserMessage) == "" {
		respondError(w, http.StatusBadRequest, "userMessage is required")
		return
	}

	userID := middleware.GetUserID(r.Context())

	result, err := h.chat.HandleUserTurn(r.Context(), userID, payload.ConversationID, payload.UserMessage)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sendMessageResponse{
		AIResponse:      result.ReplyText,
		DetectedEmotion: result.Emotion,
		ConversationID:  result.ConversationID,
	})
}

func (h *Handler) handleListConversations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summaries, err := h.history.ListConversations(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	views, err := h.history.ListMessages(r.Context(), conversationID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrConversationNotFound):
		respondError(w, http.StatusNotFound, "conversation not found")
	case errors.Is(err, domain.ErrNotConversationOwner):
		respondError(w, http.StatusForbidden, "conversation belongs to another user")
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
