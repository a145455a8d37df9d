package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartbot-backend/internal/models"
)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

// Save inserts a contact submission. Subject is stored as NULL when the
// caller omitted it; status and created_at come from the table defaults.
func (r *ContactRepo) Save(ctx context.Context, c *models.ContactSubmission) error {
	c.ID = uuid.New()

	query := `INSERT INTO contact_submissions (id, name, email, subject, message, feedback_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING status, created_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.Name, c.Email, c.Subject, c.Message, c.FeedbackType,
	).Scan(&c.Status, &c.CreatedAt)
}
