package quiz

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
)

// Service generates lesson quizzes through an LLM provider.
type Service struct {
	provider llm.Provider
}

// New creates a quiz service with the given provider.
func New(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Generate produces the quiz for one sub-topic. Malformed model output
// is an error; there is no placeholder quiz to fall back to.
func (s *Service) Generate(ctx context.Context, topic curriculum.Topic, subTopic curriculum.SubTopic, level curriculum.Level) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(topic, subTopic, level)},
		},
		Schema:      QuizSchema,
		MaxTokens:   4096,
		Temperature: 0.7,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var questions []Question
	if err := json.Unmarshal(llm.ExtractJSON(resp.Content), &questions); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	return questions, nil
}

// validateQuestions enforces the structural rules every quiz must meet.
func validateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz is empty")
	}
	for i, q := range questions {
		if q.Question == "" {
			return fmt.Errorf("question %d: empty prompt", i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d: got %d options, want 4", i+1, len(q.Options))
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
			return fmt.Errorf("question %d: answer index %d out of range", i+1, q.CorrectAnswerIndex)
		}
	}
	return nil
}
