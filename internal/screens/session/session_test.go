package session

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/llm"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/tutor"
)

// fakeRepo implements store.ProgressRepo for testing.
type fakeRepo struct {
	saved []progress.UserProgress
}

func (f *fakeRepo) Load(_ context.Context) (progress.UserProgress, error) {
	return progress.Default(), nil
}
func (f *fakeRepo) Save(_ context.Context, p progress.UserProgress) error {
	f.saved = append(f.saved, p)
	return nil
}
func (f *fakeRepo) Reset(_ context.Context) error { return nil }

func newTestSession(repo *fakeRepo, provider llm.Provider) *SessionScreen {
	topic := curriculum.FirstTopic()
	p := progress.SelectLevel(progress.Default(), curriculum.LevelBeginner)
	p = progress.UpdateName(p, "Sam")
	return New(Deps{
		Progress: repo,
		Tutor:    tutor.New(provider, tutor.DefaultConfig()),
	}, p, topic, topic.SubTopics[0])
}

func structuredReply(text string, suggestQuiz bool) llm.MockResponse {
	raw, _ := json.Marshal(map[string]any{
		"reply":        text,
		"suggest_quiz": suggestQuiz,
	})
	return llm.MockResponse{Content: raw}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestInit_SeedsGreetingOnEmptyHistory(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected init commands")
	}
	if len(s.msgs) != 1 {
		t.Fatalf("len(msgs) = %d, want 1 (greeting)", len(s.msgs))
	}
	if s.msgs[0].Role != progress.RoleModel {
		t.Errorf("greeting role = %q, want model", s.msgs[0].Role)
	}
	if !strings.Contains(s.msgs[0].Text, "Sam") {
		t.Errorf("greeting %q should address the learner by name", s.msgs[0].Text)
	}
}

func TestInit_KeepsExistingHistory(t *testing.T) {
	repo := &fakeRepo{}
	topic := curriculum.FirstTopic()
	sub := topic.SubTopics[0]

	p := progress.SelectLevel(progress.Default(), curriculum.LevelBeginner)
	p = progress.SetTopicHistory(p, sub.ID, []progress.Message{
		progress.NewMessage(progress.RoleModel, "¡Hola!"),
		progress.NewMessage(progress.RoleUser, "Hola, maestro."),
	})

	s := New(Deps{Progress: repo, Tutor: tutor.New(llm.NewMockProvider(), tutor.DefaultConfig())}, p, topic, sub)
	s.Init()

	if len(s.msgs) != 2 {
		t.Errorf("len(msgs) = %d, want the 2 stored messages", len(s.msgs))
	}
}

func TestSubmit_AppendsUserMessageAndWaits(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider(structuredReply("¡Muy bien!", false)))
	s.Init()

	for _, r := range "hola" {
		s.Update(keyPress(r))
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected commands from submit")
	}

	if !s.waiting {
		t.Error("expected waiting after submit")
	}
	last := s.msgs[len(s.msgs)-1]
	if last.Role != progress.RoleUser || last.Text != "hola" {
		t.Errorf("last message = %+v, want user 'hola'", last)
	}
}

func TestReply_AppendsModelMessage(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())
	s.Init()
	s.waiting = true

	s.Update(replyMsg{Response: &tutor.ChatResponse{Text: "¡Excelente trabajo!", SuggestQuiz: true, SuggestionReason: "You nailed the vocabulary."}})

	if s.waiting {
		t.Error("waiting should clear on reply")
	}
	last := s.msgs[len(s.msgs)-1]
	if last.Role != progress.RoleModel || last.Text != "¡Excelente trabajo!" {
		t.Errorf("last message = %+v, want the model reply", last)
	}
	if !s.suggestQuiz {
		t.Error("quiz suggestion should be set")
	}

	view := s.View(100, 30)
	if !strings.Contains(view, "You nailed the vocabulary.") {
		t.Error("view should show the suggestion banner")
	}
}

func TestReply_ErrorFallsBack(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())
	s.Init()
	s.waiting = true

	s.Update(replyMsg{Err: context.DeadlineExceeded})

	last := s.msgs[len(s.msgs)-1]
	if last.Text != tutor.FallbackReply {
		t.Errorf("last message = %q, want the fallback reply", last.Text)
	}
	if s.suggestQuiz {
		t.Error("an errored turn must not suggest a quiz")
	}
}

func TestSendTurn_ExcludesNewMessageFromHistory(t *testing.T) {
	provider := llm.NewMockProvider(structuredReply("ok", false))
	repo := &fakeRepo{}
	s := newTestSession(repo, provider)
	s.Init()

	s.msgs = append(s.msgs, progress.NewMessage(progress.RoleUser, "¿cómo estás?"))
	cmd := s.sendTurn("¿cómo estás?")
	cmd()

	if provider.CallCount() != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.CallCount())
	}
	req := provider.Calls[0]
	// Greeting + the new message, but the new message only once.
	userTurns := 0
	for _, m := range req.Messages {
		if m.Role == llm.RoleUser && m.Content == "¿cómo estás?" {
			userTurns++
		}
	}
	if userTurns != 1 {
		t.Errorf("new message appears %d times in the request, want 1", userTurns)
	}
}

func TestQuizDone_PassMarksComplete(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())
	s.Init()
	s.suggestQuiz = true

	p := progress.CompleteSubTopic(s.prog, s.topic.ID, s.sub.ID)
	s.Update(quizDoneMsg{Passed: true, Progress: p})

	if !s.completed {
		t.Error("passing the quiz should mark the lesson complete")
	}
	if s.suggestQuiz {
		t.Error("the suggestion banner should clear")
	}
	if s.prog.XP != p.XP {
		t.Error("the updated profile should be adopted")
	}
}

func TestPersist_StripsNothingDurable(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())
	s.Init()

	cmd := s.persist()
	cmd()

	if len(repo.saved) == 0 {
		t.Fatal("expected a save")
	}
	if len(repo.saved[len(repo.saved)-1].History(s.sub.ID)) != len(s.msgs) {
		t.Error("persisted history should match the transcript")
	}
}

func TestRestart_ClearsTranscriptAndCompletion(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())
	s.Init()
	s.msgs = append(s.msgs, progress.NewMessage(progress.RoleUser, "hola"))
	s.prog = progress.CompleteSubTopic(s.prog, s.topic.ID, s.sub.ID)
	s.completed = true
	s.suggestQuiz = true

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected restart to persist the fresh transcript")
	}
	if s.completed || s.suggestQuiz {
		t.Error("restart should clear completion and the quiz suggestion")
	}
	if len(s.msgs) != 1 || s.msgs[0].Role != progress.RoleModel {
		t.Fatalf("transcript = %d messages, want just the greeting", len(s.msgs))
	}
	if s.prog.SubTopicCompleted(s.sub.ID) {
		t.Error("the lesson should no longer count as completed")
	}
}

func TestRestart_IgnoredWhileBusy(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())
	s.Init()
	s.waiting = true
	before := len(s.msgs)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if cmd != nil || len(s.msgs) != before {
		t.Error("restart should do nothing while a turn is in flight")
	}
}

func TestEsc_LeavesWhenIdle(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())
	s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a navigation command on esc")
	}
	if s.confirmingQuit {
		t.Error("no confirmation needed when idle")
	}
}

func TestEsc_ConfirmsWhileWaiting(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSession(repo, llm.NewMockProvider())
	s.Init()
	s.waiting = true

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.confirmingQuit {
		t.Fatal("expected the quit confirmation while a turn is in flight")
	}

	_, cmd := s.Update(keyPress('n'))
	if s.confirmingQuit || cmd != nil {
		t.Error("'n' should dismiss the confirmation and stay")
	}
}
