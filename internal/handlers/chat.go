package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"smartbot-backend/internal/models"
)

type chatService interface {
	SendMessage(ctx context.Context, sessionID, content string) (*models.ChatMessage, error)
	History(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	CreateSession(ctx context.Context) (*models.ChatSession, error)
	ListSessions(ctx context.Context) ([]models.ChatSession, error)
}

type ChatHandler struct {
	chatService chatService
}

func NewChatHandler(svc chatService) *ChatHandler {
	return &ChatHandler{chatService: svc}
}

// SendMessage handles POST /api/chat/message. Store and gateway failures
// both collapse into the same generic 500; the caller is never told which
// step failed.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.SessionID) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "session_id is required", r))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "content is required", r))
		return
	}

	botMsg, err := h.chatService.SendMessage(r.Context(), req.SessionID, req.Content)
	if err != nil {
		log.Printf("Error in chat message: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Error processing message", r))
		return
	}

	writeJSON(w, http.StatusOK, botMsg)
}

// GetHistory handles GET /api/chat/history/{sessionID}. An unknown
// session is an empty array, not an error.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatService.History(r.Context(), sessionID)
	if err != nil {
		log.Printf("Error getting chat history: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Error retrieving chat history", r))
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// CreateSession handles POST /api/chat/session. No request body.
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatService.CreateSession(r.Context())
	if err != nil {
		log.Printf("Error creating chat session: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Error creating chat session", r))
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// ListSessions handles GET /api/chat/sessions.
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.chatService.ListSessions(r.Context())
	if err != nil {
		log.Printf("Error getting chat sessions: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Error retrieving chat sessions", r))
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}
