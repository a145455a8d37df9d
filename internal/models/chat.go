package models

import (
	"time"

	"github.com/google/uuid"
)

// Message types stored in chat_messages.type.
const (
	MessageTypeUser = "user"
	MessageTypeBot  = "bot"
)

// ChatMessage is a single utterance within a session. Messages are
// immutable once created; the timestamp is assigned by the store.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id"`
	Type      string    `json:"type"` // "user" or "bot"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession ties a sequence of message turns together. The ID is an
// opaque string: generated on explicit creation, or supplied by the
// client and upserted on first message send.
type ChatSession struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	Title        string    `json:"title"`
}

// SendMessageRequest is the payload for POST /api/chat/message.
type SendMessageRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}
