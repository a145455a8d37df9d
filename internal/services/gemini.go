package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"smartbot-backend/internal/models"
)

// systemPrompt is the fixed SmartBot persona. It is not configurable.
const systemPrompt = `You are SmartBot, an AI-powered assistant built using the Gemini API.
You are designed to help students and professionals with accurate, helpful responses.

Your key features:
- 50% higher accuracy than traditional chatbots
- Real-time natural language processing
- Faster response times
- User-friendly interface

Be helpful, concise, and professional in your responses. If you don't know something,
admit it and offer to help with related topics you do know about.`

// GeminiService is the gateway to the Gemini provider. The store is the
// only holder of conversation state: every call rebuilds the provider
// conversation from the stored history window for its session, so the
// shared service is safe for concurrent use and a failed turn leaves no
// state behind.
type GeminiService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	rateChan chan struct{} // Token bucket
}

func NewGeminiService(apiKey, modelName string, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	// Token bucket capping in-flight provider calls
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:   client,
		model:    model,
		rateChan: rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Reply sends one user text under the session's conversation and returns
// the model's reply text. No retry; the transport's defaults are the only
// timeout handling.
func (s *GeminiService) Reply(ctx context.Context, sessionID, content string, history []models.ChatMessage) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	chat := s.newChat(history)

	resp, err := chat.SendMessage(ctx, genai.Text(content))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", fmt.Errorf("Gemini returned empty response")
	}

	return text, nil
}

// newChat builds a fresh conversation seeded from stored history. A chat
// is never shared across calls: genai's ChatSession mutates its history
// slice unsynchronized on every send, including on error.
func (s *GeminiService) newChat(history []models.ChatMessage) *genai.ChatSession {
	chat := s.model.StartChat()
	chat.History = historyToContents(history)
	return chat
}

// historyToContents maps stored messages onto the provider's content
// roles ("user" / "model"). The provider expects multiturn history to
// alternate starting at a user turn, so bot replies before the first
// user message are dropped and consecutive same-role messages (partial
// failure remnants) are folded into one content.
func historyToContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Type == models.MessageTypeBot {
			role = "model"
		}
		if len(contents) == 0 && role != "user" {
			continue
		}
		if last := len(contents) - 1; last >= 0 && contents[last].Role == role {
			contents[last].Parts = append(contents[last].Parts, genai.Text("\n"+m.Content))
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	// The window ends with the just-persisted inbound message; a trailing
	// user turn must not be seeded or the live send would follow it with
	// a second user content.
	if n := len(contents); n > 0 && contents[n-1].Role == "user" {
		contents = contents[:n-1]
	}
	return contents
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
