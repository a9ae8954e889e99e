package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
)

func quizJSON(n int) json.RawMessage {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"question":"Q%d","options":["a","b","c","d"],"correctAnswerIndex":%d,"explanation":"E%d"}`, i, i%4, i)
	}
	return json.RawMessage("[" + strings.Join(items, ",") + "]")
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(10)})
	svc := New(mock)

	topic := curriculum.FirstTopic()
	questions, err := svc.Generate(context.Background(), topic, topic.SubTopics[0], curriculum.LevelBeginner)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("got %d questions, want 10", len(questions))
	}
	if questions[3].CorrectAnswerIndex != 3 {
		t.Errorf("question 3 answer index = %d", questions[3].CorrectAnswerIndex)
	}

	req := mock.Calls[0]
	if req.Schema != QuizSchema {
		t.Error("request should carry the quiz schema")
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, topic.SubTopics[0].Title) || !strings.Contains(prompt, topic.Title) {
		t.Error("prompt should name the lesson")
	}
	if !strings.Contains(prompt, "MANDATORY BEGINNER RULES") {
		t.Error("beginner guideline missing")
	}
}

func TestGenerate_LanguageGuidelines(t *testing.T) {
	tests := []struct {
		level curriculum.Level
		want  string
	}{
		{curriculum.LevelBeginner, "MUST BE IN ENGLISH"},
		{curriculum.LevelIntermediate, "mix of English and Spanish"},
		{curriculum.LevelExpert, "Spanish only"},
	}
	topic := curriculum.FirstTopic()

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(10)})
			if _, err := New(mock).Generate(context.Background(), topic, topic.SubTopics[0], tt.level); err != nil {
				t.Fatalf("generate: %v", err)
			}
			if !strings.Contains(mock.Calls[0].Messages[0].Content, tt.want) {
				t.Errorf("prompt for %s missing %q", tt.level, tt.want)
			}
		})
	}
}

func TestGenerate_RejectsMalformedOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty array", `[]`},
		{"three options", `[{"question":"Q","options":["a","b","c"],"correctAnswerIndex":0,"explanation":"E"}]`},
		{"index out of range", `[{"question":"Q","options":["a","b","c","d"],"correctAnswerIndex":4,"explanation":"E"}]`},
		{"negative index", `[{"question":"Q","options":["a","b","c","d"],"correctAnswerIndex":-1,"explanation":"E"}]`},
		{"empty prompt", `[{"question":"","options":["a","b","c","d"],"correctAnswerIndex":0,"explanation":"E"}]`},
		{"not json", `the quiz is ready!`},
	}

	topic := curriculum.FirstTopic()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			if _, err := New(mock).Generate(context.Background(), topic, topic.SubTopics[0], curriculum.LevelExpert); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestGenerate_FencedOutput(t *testing.T) {
	fenced := "```json\n" + string(quizJSON(10)) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})

	topic := curriculum.FirstTopic()
	questions, err := New(mock).Generate(context.Background(), topic, topic.SubTopics[0], curriculum.LevelExpert)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("got %d questions, want 10", len(questions))
	}
}

func TestGrade(t *testing.T) {
	questions := make([]Question, 10)
	for i := range questions {
		questions[i] = Question{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 1}
	}

	tests := []struct {
		name    string
		answers []int
		score   int
		passed  bool
	}{
		{"all correct", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 10, true},
		{"exactly 70%", []int{1, 1, 1, 1, 1, 1, 1, 0, 0, 0}, 7, true},
		{"just below", []int{1, 1, 1, 1, 1, 1, 0, 0, 0, 0}, 6, false},
		{"missing answers count wrong", []int{1, 1, 1}, 3, false},
		{"none", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Grade(questions, tt.answers)
			if r.Score != tt.score || r.Passed != tt.passed {
				t.Errorf("Grade = %+v, want score %d passed %v", r, tt.score, tt.passed)
			}
			if r.Total != 10 {
				t.Errorf("total = %d", r.Total)
			}
		})
	}
}
