package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
	"github.com/abhisek/maestro/internal/progress"
)

// FallbackReply is shown when the model output cannot be used at all.
const FallbackReply = "Lo siento, I couldn't process that. Try again?"

// ChatResponse is one tutoring turn.
type ChatResponse struct {
	Text             string
	SuggestQuiz      bool
	SuggestionReason string
}

// SendInput carries everything a tutoring turn depends on.
type SendInput struct {
	History    []progress.Message
	NewMessage string
	Level      curriculum.Level
	Topic      *curriculum.Topic
	SubTopic   *curriculum.SubTopic
	UserName   string
}

// Config controls the tutoring service.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended tutoring settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.8,
	}
}

// Service drives lesson conversations through an LLM provider.
type Service struct {
	provider llm.Provider
	config   Config
}

// New creates a tutoring service with the given provider and config.
func New(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// replyOutput is the raw LLM response before mapping.
type replyOutput struct {
	Reply            string `json:"reply"`
	SuggestQuiz      bool   `json:"suggest_quiz"`
	SuggestionReason string `json:"suggestion_reason"`
}

// Send submits the learner's message with the windowed lesson history
// and returns the tutor's turn. A malformed model reply degrades to a
// plain-text response rather than failing the lesson.
func (s *Service) Send(ctx context.Context, input SendInput) (*ChatResponse, error) {
	ctx = llm.WithPurpose(ctx, "chat")

	messages := prepareHistory(input.History)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input.NewMessage})

	req := llm.Request{
		System:      SystemInstruction(input.Level, input.Topic, input.SubTopic, input.UserName),
		Messages:    messages,
		Schema:      ReplySchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tutor turn failed: %w", err)
	}

	return parseReply(resp.Content), nil
}

// parseReply maps validated JSON to a ChatResponse, falling back to
// treating the content as plain text when it does not parse.
func parseReply(content json.RawMessage) *ChatResponse {
	var raw replyOutput
	if err := json.Unmarshal(llm.ExtractJSON(content), &raw); err == nil && raw.Reply != "" {
		return &ChatResponse{
			Text:             raw.Reply,
			SuggestQuiz:      raw.SuggestQuiz,
			SuggestionReason: raw.SuggestionReason,
		}
	}

	text := strings.TrimSpace(string(content))
	text = strings.Trim(text, `"`)
	if text == "" {
		text = FallbackReply
	}
	return &ChatResponse{Text: text}
}
