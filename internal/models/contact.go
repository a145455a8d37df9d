package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactSubmission is a contact form entry. Write-once: no lifecycle
// beyond creation, status is always "received".
type ContactSubmission struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Subject      *string   `json:"subject,omitempty"`
	Message      string    `json:"message"`
	FeedbackType string    `json:"feedback_type"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ContactRequest is the payload for POST /api/contact.
type ContactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Subject      string `json:"subject,omitempty"`
	Message      string `json:"message"`
	FeedbackType string `json:"feedback_type,omitempty"`
}

// ContactResponse acknowledges a stored submission.
type ContactResponse struct {
	ID      uuid.UUID `json:"id"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
}
