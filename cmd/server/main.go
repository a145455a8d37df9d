package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartbot-backend/internal/config"
	"smartbot-backend/internal/database"
	"smartbot-backend/internal/handlers"
	"smartbot-backend/internal/repository"
	"smartbot-backend/internal/router"
	"smartbot-backend/internal/services"
)

func main() {
	log.Println("SmartBot API starting up...")

	// ──── Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Printf("✓ PostgreSQL connected (database: %s)", pool.Config().ConnConfig.Database)

	// ──── Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	messageRepo := repository.NewMessageRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	contactRepo := repository.NewContactRepo(pool)

	// ──── Initialize Gemini Gateway ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiConcurrentReqs)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Println("✓ Gemini API integration enabled")

	// ──── Initialize Services and Handlers ────
	chatService := services.NewChatService(messageRepo, sessionRepo, geminiService)
	chatHandler := handlers.NewChatHandler(chatService)
	contactHandler := handlers.NewContactHandler(contactRepo)

	// ──── Start HTTP Server ────
	r := router.New(chatHandler, contactHandler)

	// No write timeout: a gateway call may legitimately outlast any
	// deadline we would pick, and the system imposes none of its own.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("SmartBot API shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ SmartBot API ready on http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
