package tutor

import (
	"fmt"
	"testing"

	"github.com/abhisek/maestro/internal/llm"
	"github.com/abhisek/maestro/internal/progress"
)

func msg(role progress.Role, text string) progress.Message {
	return progress.NewMessage(role, text)
}

func TestPrepareHistory_AlternatesAndDropsTrailingUser(t *testing.T) {
	history := []progress.Message{
		msg(progress.RoleModel, "hola"),
		msg(progress.RoleUser, "hi"),
		msg(progress.RoleUser, "are you there?"), // collapsed
		msg(progress.RoleModel, "sí"),
		msg(progress.RoleUser, "pending"), // dropped, caller resends
	}

	got := prepareHistory(history)

	want := []llm.Message{
		{Role: llm.RoleAssistant, Content: "hola"},
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "sí"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPrepareHistory_Window(t *testing.T) {
	var history []progress.Message
	for i := 0; i < 30; i++ {
		role := progress.RoleUser
		if i%2 == 0 {
			role = progress.RoleModel
		}
		history = append(history, msg(role, fmt.Sprintf("turn %d", i)))
	}

	got := prepareHistory(history)

	// Window keeps the last 20 turns; the trailing user turn is dropped.
	if len(got) != historyWindow-1 {
		t.Fatalf("got %d messages, want %d", len(got), historyWindow-1)
	}
	if got[0].Content != "turn 10" {
		t.Errorf("window should keep the most recent turns, first = %q", got[0].Content)
	}
	if got[len(got)-1].Content != "turn 28" {
		t.Errorf("last replayed turn = %q, want %q", got[len(got)-1].Content, "turn 28")
	}
}

func TestPrepareHistory_Empty(t *testing.T) {
	if got := prepareHistory(nil); len(got) != 0 {
		t.Errorf("expected empty, got %+v", got)
	}
	// A lone user message yields nothing to replay.
	if got := prepareHistory([]progress.Message{msg(progress.RoleUser, "hola")}); len(got) != 0 {
		t.Errorf("expected empty, got %+v", got)
	}
}
