package services

import (
	"context"
	"fmt"

	"smartbot-backend/internal/models"
)

const (
	contextWindow = 50   // messages handed to the gateway as context
	historyLimit  = 1000 // messages returned by the history endpoint
	sessionsLimit = 100  // sessions returned by the listing endpoint
)

type messageStore interface {
	Create(ctx context.Context, m *models.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
	ListRecentBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}

type sessionStore interface {
	Create(ctx context.Context, s *models.ChatSession) error
	RecordTurn(ctx context.Context, sessionID string) error
	List(ctx context.Context, limit int) ([]models.ChatSession, error)
}

type responder interface {
	Reply(ctx context.Context, sessionID, content string, history []models.ChatMessage) (string, error)
}

// ChatService orchestrates one chat turn and the session/history reads
// around it. The steps of a turn are independent writes with no
// transaction across them: a persisted user message stays persisted even
// when the gateway call after it fails.
type ChatService struct {
	messages messageStore
	sessions sessionStore
	gateway  responder
}

func NewChatService(messages messageStore, sessions sessionStore, gateway responder) *ChatService {
	return &ChatService{
		messages: messages,
		sessions: sessions,
		gateway:  gateway,
	}
}

// SendMessage runs a full turn: persist the user message, load recent
// context, ask the gateway for a reply, persist it, and bump the session.
// Returns the persisted bot message.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, content string) (*models.ChatMessage, error) {
	userMsg := &models.ChatMessage{
		SessionID: sessionID,
		Type:      models.MessageTypeUser,
		Content:   content,
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := s.messages.ListRecentBySession(ctx, sessionID, contextWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	reply, err := s.gateway.Reply(ctx, sessionID, content, history)
	if err != nil {
		return nil, fmt.Errorf("gateway call failed: %w", err)
	}

	botMsg := &models.ChatMessage{
		SessionID: sessionID,
		Type:      models.MessageTypeBot,
		Content:   reply,
	}
	if err := s.messages.Create(ctx, botMsg); err != nil {
		return nil, fmt.Errorf("failed to save bot message: %w", err)
	}

	if err := s.sessions.RecordTurn(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return botMsg, nil
}

// History returns a session's messages oldest first. Unknown or empty
// sessions return an empty slice.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	return s.messages.ListBySession(ctx, sessionID, historyLimit)
}

// CreateSession persists and returns a new session with defaults.
func (s *ChatService) CreateSession(ctx context.Context) (*models.ChatSession, error) {
	session := &models.ChatSession{}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns the most recently updated sessions.
func (s *ChatService) ListSessions(ctx context.Context) ([]models.ChatSession, error) {
	return s.sessions.List(ctx, sessionsLimit)
}
