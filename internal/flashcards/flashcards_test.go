package flashcards

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
)

func deckJSON(n int) json.RawMessage {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"front":"palabra%d","back":"word%d","example":"Una frase %d."}`, i, i, i)
	}
	return json.RawMessage("[" + strings.Join(items, ",") + "]")
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: deckJSON(10)})
	svc := New(mock)

	topic := curriculum.FirstTopic()
	cards, err := svc.Generate(context.Background(), topic, topic.SubTopics[0], curriculum.LevelIntermediate)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(cards) != 10 {
		t.Fatalf("got %d cards, want 10", len(cards))
	}
	if cards[0].Front != "palabra0" || cards[0].Back != "word0" {
		t.Errorf("card 0 = %+v", cards[0])
	}

	req := mock.Calls[0]
	if req.Schema != DeckSchema {
		t.Error("request should carry the deck schema")
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, topic.SubTopics[0].Title) {
		t.Error("prompt should name the sub-topic")
	}
	if !strings.Contains(prompt, string(curriculum.LevelIntermediate)) {
		t.Error("prompt should carry the level")
	}
}

func TestGenerate_RejectsMalformedOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty deck", `[]`},
		{"missing back", `[{"front":"hola","back":"","example":"Hola."}]`},
		{"not json", `no cards today`},
	}

	topic := curriculum.FirstTopic()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			if _, err := New(mock).Generate(context.Background(), topic, topic.SubTopics[0], curriculum.LevelBeginner); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
