package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartbot-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Create inserts a message and lets the store assign its timestamp, so
// timestamps within a session are non-decreasing in insertion order.
func (r *MessageRepo) Create(ctx context.Context, m *models.ChatMessage) error {
	m.ID = uuid.New()

	query := `INSERT INTO chat_messages (id, session_id, type, content)
		VALUES ($1, $2, $3, $4) RETURNING timestamp`

	return r.pool.QueryRow(ctx, query, m.ID, m.SessionID, m.Type, m.Content).Scan(&m.Timestamp)
}

// ListBySession returns up to limit messages for a session in timestamp
// order. An unknown session yields an empty slice, not an error.
func (r *MessageRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	query := `SELECT id, session_id, type, content, timestamp
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY timestamp ASC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Type, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListRecentBySession returns the most recent limit messages for a session,
// re-ordered oldest first so they can seed conversational context.
func (r *MessageRepo) ListRecentBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	query := `SELECT id, session_id, type, content, timestamp FROM (
			SELECT id, session_id, type, content, timestamp
			FROM chat_messages
			WHERE session_id = $1
			ORDER BY timestamp DESC
			LIMIT $2
		) recent
		ORDER BY timestamp ASC`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Type, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
