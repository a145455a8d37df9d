package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"smartbot-backend/internal/models"
)

// ─── In-memory stores ───

type memMessageStore struct {
	messages []models.ChatMessage
	now      time.Time
	failNext bool
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *memMessageStore) Create(ctx context.Context, m *models.ChatMessage) error {
	if s.failNext {
		s.failNext = false
		return errors.New("insert failed")
	}
	m.ID = uuid.New()
	s.now = s.now.Add(time.Millisecond)
	m.Timestamp = s.now
	s.messages = append(s.messages, *m)
	return nil
}

func (s *memMessageStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	out := []models.ChatMessage{}
	for _, m := range s.messages {
		if m.SessionID == sessionID && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMessageStore) ListRecentBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	all, _ := s.ListBySession(ctx, sessionID, len(s.messages)+1)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

type memSessionStore struct {
	sessions map[string]*models.ChatSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*models.ChatSession)}
}

func (s *memSessionStore) Create(ctx context.Context, sess *models.ChatSession) error {
	sess.ID = uuid.NewString()
	sess.CreatedAt = time.Now().UTC()
	sess.UpdatedAt = sess.CreatedAt
	sess.Title = "New Chat"
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memSessionStore) RecordTurn(ctx context.Context, sessionID string) error {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &models.ChatSession{ID: sessionID, Title: "New Chat"}
		s.sessions[sessionID] = sess
	}
	sess.MessageCount += 2
	sess.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *memSessionStore) List(ctx context.Context, limit int) ([]models.ChatSession, error) {
	out := []models.ChatSession{}
	for _, sess := range s.sessions {
		if len(out) < limit {
			out = append(out, *sess)
		}
	}
	return out, nil
}

type stubGateway struct {
	reply string
	err   error
	calls int
}

func (g *stubGateway) Reply(ctx context.Context, sessionID, content string, history []models.ChatMessage) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

// ─── Tests ───

func TestSendMessage_PersistsUserThenBot(t *testing.T) {
	messages := newMemMessageStore()
	sessions := newMemSessionStore()
	gateway := &stubGateway{reply: "hello"}
	svc := NewChatService(messages, sessions, gateway)

	botMsg, err := svc.SendMessage(context.Background(), "S1", "hi")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if botMsg.Type != models.MessageTypeBot {
		t.Errorf("expected bot message, got type %q", botMsg.Type)
	}
	if botMsg.Content != "hello" {
		t.Errorf("expected content 'hello', got %q", botMsg.Content)
	}
	if botMsg.SessionID != "S1" {
		t.Errorf("expected session_id S1, got %q", botMsg.SessionID)
	}

	history, _ := svc.History(context.Background(), "S1")
	if len(history) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(history))
	}
	if history[0].Type != models.MessageTypeUser || history[0].Content != "hi" {
		t.Errorf("expected user 'hi' first, got %v %q", history[0].Type, history[0].Content)
	}
	if history[1].Type != models.MessageTypeBot || history[1].Content != "hello" {
		t.Errorf("expected bot 'hello' second, got %v %q", history[1].Type, history[1].Content)
	}
	if !history[0].Timestamp.Before(history[1].Timestamp) {
		t.Error("expected user timestamp before bot timestamp")
	}
}

func TestSendMessage_CountsTwoPerTurn(t *testing.T) {
	messages := newMemMessageStore()
	sessions := newMemSessionStore()
	svc := NewChatService(messages, sessions, &stubGateway{reply: "ok"})

	for i := 0; i < 3; i++ {
		if _, err := svc.SendMessage(context.Background(), "S1", "ping"); err != nil {
			t.Fatalf("turn %d failed: %v", i, err)
		}
	}

	if got := sessions.sessions["S1"].MessageCount; got != 6 {
		t.Errorf("expected message_count 6 after 3 turns, got %d", got)
	}
}

// A gateway failure must surface as an error while the already persisted
// user message stays in the store. There is no rollback.
func TestSendMessage_GatewayFailureKeepsUserMessage(t *testing.T) {
	messages := newMemMessageStore()
	sessions := newMemSessionStore()
	gateway := &stubGateway{err: errors.New("provider unavailable")}
	svc := NewChatService(messages, sessions, gateway)

	if _, err := svc.SendMessage(context.Background(), "S1", "hi"); err == nil {
		t.Fatal("expected error when gateway fails")
	}

	history, _ := svc.History(context.Background(), "S1")
	if len(history) != 1 {
		t.Fatalf("expected 1 persisted message after gateway failure, got %d", len(history))
	}
	if history[0].Type != models.MessageTypeUser {
		t.Errorf("expected the surviving message to be the user's, got %q", history[0].Type)
	}
	if _, ok := sessions.sessions["S1"]; ok {
		t.Error("session must not be touched when the turn fails before the upsert")
	}
}

func TestSendMessage_UserInsertFailureSkipsGateway(t *testing.T) {
	messages := newMemMessageStore()
	messages.failNext = true
	gateway := &stubGateway{reply: "unused"}
	svc := NewChatService(messages, newMemSessionStore(), gateway)

	if _, err := svc.SendMessage(context.Background(), "S1", "hi"); err == nil {
		t.Fatal("expected error when user insert fails")
	}
	if gateway.calls != 0 {
		t.Errorf("gateway must not be called after a failed insert, got %d calls", gateway.calls)
	}
}

func TestHistory_UnknownSessionIsEmpty(t *testing.T) {
	svc := NewChatService(newMemMessageStore(), newMemSessionStore(), &stubGateway{})

	history, err := svc.History(context.Background(), "unknown-session")
	if err != nil {
		t.Fatalf("expected no error for unknown session, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d messages", len(history))
	}
}

func TestCreateSession_DistinctIdentifiers(t *testing.T) {
	svc := NewChatService(newMemMessageStore(), newMemSessionStore(), &stubGateway{})

	first, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("expected distinct session ids, both were %q", first.ID)
	}
	if first.MessageCount != 0 || first.Title != "New Chat" {
		t.Errorf("expected defaults (0, 'New Chat'), got (%d, %q)", first.MessageCount, first.Title)
	}
}
