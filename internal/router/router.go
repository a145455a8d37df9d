package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smartbot-backend/internal/handlers"
	"smartbot-backend/internal/middleware"
)

func New(chatHandler *handlers.ChatHandler, contactHandler *handlers.ContactHandler) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"message":"SmartBot API - AI-Powered Assistant"}`))
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"healthy","service":"SmartBot API"}`))
		})

		r.Route("/chat", func(r chi.Router) {
			r.Post("/message", chatHandler.SendMessage)
			r.Get("/history/{sessionID}", chatHandler.GetHistory)
			r.Post("/session", chatHandler.CreateSession)
			r.Get("/sessions", chatHandler.ListSessions)
		})

		r.Post("/contact", contactHandler.Submit)
	})

	return r
}
