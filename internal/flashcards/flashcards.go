package flashcards

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
)

// CardCount is how many cards every deck carries.
const CardCount = 10

// Card is a single vocabulary flashcard.
type Card struct {
	Front   string `json:"front"`   // Spanish
	Back    string `json:"back"`    // English
	Example string `json:"example"` // natural example sentence in Spanish
}

// DeckSchema defines the JSON schema for flashcard generation responses.
var DeckSchema = &llm.Schema{
	Name:        "flashcard-deck",
	Description: "A deck of Spanish vocabulary flashcards",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"front":   map[string]any{"type": "string", "description": "The Spanish word or phrase"},
				"back":    map[string]any{"type": "string", "description": "The English translation"},
				"example": map[string]any{"type": "string", "description": "A natural example sentence in Spanish"},
			},
			"required":             []any{"front", "back", "example"},
			"additionalProperties": false,
		},
	},
}

// Service generates vocabulary decks through an LLM provider.
type Service struct {
	provider llm.Provider
}

// New creates a flashcard service with the given provider.
func New(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Generate produces the vocabulary deck for one sub-topic. Malformed
// model output is an error; there is no placeholder deck.
func (s *Service) Generate(ctx context.Context, topic curriculum.Topic, subTopic curriculum.SubTopic, level curriculum.Level) ([]Card, error) {
	ctx = llm.WithPurpose(ctx, "flashcards")

	prompt := fmt.Sprintf(`Generate exactly %d Spanish vocabulary flashcards for: %q (%s).
Level: %s.
Include a front (Spanish), back (English), and a natural example sentence in Spanish.`,
		CardCount, subTopic.Title, subTopic.Description, level)

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		Schema:      DeckSchema,
		MaxTokens:   2048,
		Temperature: 0.7,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("flashcard generation failed: %w", err)
	}

	var cards []Card
	if err := json.Unmarshal(llm.ExtractJSON(resp.Content), &cards); err != nil {
		return nil, fmt.Errorf("parse flashcard response: %w", err)
	}

	if err := validateCards(cards); err != nil {
		return nil, err
	}

	return cards, nil
}

func validateCards(cards []Card) error {
	if len(cards) == 0 {
		return fmt.Errorf("deck is empty")
	}
	for i, c := range cards {
		if c.Front == "" || c.Back == "" {
			return fmt.Errorf("card %d: missing front or back", i+1)
		}
	}
	return nil
}
