package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"smartbot-backend/internal/models"
)

type contactStore interface {
	Save(ctx context.Context, c *models.ContactSubmission) error
}

type ContactHandler struct {
	contacts contactStore
}

func NewContactHandler(contacts contactStore) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit handles POST /api/contact. name, email and message are required;
// subject is optional and feedback_type defaults to "general". Beyond
// presence there is no validation, not even of the email format.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "name is required", r))
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "email is required", r))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "message is required", r))
		return
	}

	submission := &models.ContactSubmission{
		Name:         req.Name,
		Email:        req.Email,
		Message:      req.Message,
		FeedbackType: req.FeedbackType,
	}
	if req.Subject != "" {
		submission.Subject = &req.Subject
	}
	if submission.FeedbackType == "" {
		submission.FeedbackType = "general"
	}

	if err := h.contacts.Save(r.Context(), submission); err != nil {
		log.Printf("Error submitting contact form: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Error submitting contact form", r))
		return
	}

	writeJSON(w, http.StatusOK, models.ContactResponse{
		ID:      submission.ID,
		Status:  "success",
		Message: "Thank you for your message. We'll get back to you soon!",
	})
}
