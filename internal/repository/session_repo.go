package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartbot-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Create inserts a fresh session with a generated identifier, zero
// message_count and the default title.
func (r *SessionRepo) Create(ctx context.Context, s *models.ChatSession) error {
	s.ID = uuid.NewString()

	query := `INSERT INTO chat_sessions (id)
		VALUES ($1) RETURNING created_at, updated_at, message_count, title`

	return r.pool.QueryRow(ctx, query, s.ID).Scan(
		&s.CreatedAt, &s.UpdatedAt, &s.MessageCount, &s.Title,
	)
}

// RecordTurn refreshes updated_at and increments message_count by 2 (one
// user plus one bot message), creating the session row if it does not
// exist yet. The increment is atomic at the store but independent of
// whether both message writes actually succeeded.
func (r *SessionRepo) RecordTurn(ctx context.Context, sessionID string) error {
	query := `INSERT INTO chat_sessions (id, message_count)
		VALUES ($1, 2)
		ON CONFLICT (id) DO UPDATE
		SET updated_at = NOW(),
			message_count = chat_sessions.message_count + 2`

	_, err := r.pool.Exec(ctx, query, sessionID)
	return err
}

// List returns up to limit sessions, most recently updated first.
func (r *SessionRepo) List(ctx context.Context, limit int) ([]models.ChatSession, error) {
	query := `SELECT id, created_at, updated_at, message_count, title
		FROM chat_sessions
		ORDER BY updated_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.ChatSession{}
	for rows.Next() {
		var s models.ChatSession
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.MessageCount, &s.Title); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
