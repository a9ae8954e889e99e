package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
	"github.com/abhisek/maestro/internal/progress"
)

func TestSend_StructuredReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"reply":"[Greetings] ¡Muy bien!","suggest_quiz":true,"suggestion_reason":"You nailed the drill."}`),
	})
	svc := New(mock, DefaultConfig())

	topic := curriculum.FirstTopic()
	sub := topic.SubTopics[0]

	resp, err := svc.Send(context.Background(), SendInput{
		History:    []progress.Message{progress.NewMessage(progress.RoleModel, "hola")},
		NewMessage: "estoy listo",
		Level:      curriculum.LevelBeginner,
		Topic:      &topic,
		SubTopic:   &sub,
		UserName:   "Sam",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if resp.Text != "[Greetings] ¡Muy bien!" {
		t.Errorf("text = %q", resp.Text)
	}
	if !resp.SuggestQuiz || resp.SuggestionReason != "You nailed the drill." {
		t.Errorf("suggestion = %v %q", resp.SuggestQuiz, resp.SuggestionReason)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema != ReplySchema {
		t.Error("request should carry the reply schema")
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != llm.RoleUser || last.Content != "estoy listo" {
		t.Errorf("last message = %+v", last)
	}
}

func TestSend_PlainTextFallback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"Claro, repitamos los saludos."`),
	})
	svc := New(mock, DefaultConfig())

	resp, err := svc.Send(context.Background(), SendInput{
		NewMessage: "otra vez",
		Level:      curriculum.LevelBeginner,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp.Text != "Claro, repitamos los saludos." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.SuggestQuiz {
		t.Error("plain text fallback must not suggest a quiz")
	}
}

func TestSend_EmptyReplyUsesFallbackLine(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`""`),
	})
	svc := New(mock, DefaultConfig())

	resp, err := svc.Send(context.Background(), SendInput{NewMessage: "hola", Level: curriculum.LevelBeginner})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp.Text != FallbackReply {
		t.Errorf("text = %q, want fallback line", resp.Text)
	}
}

func TestSend_ProviderError(t *testing.T) {
	wantErr := errors.New("boom")
	mock := llm.NewMockProvider(llm.MockResponse{Err: wantErr})
	svc := New(mock, DefaultConfig())

	_, err := svc.Send(context.Background(), SendInput{NewMessage: "hola", Level: curriculum.LevelBeginner})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
}
