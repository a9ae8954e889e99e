package home

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/screen"
)

// fakeRepo implements store.ProgressRepo for testing.
type fakeRepo struct {
	loaded progress.UserProgress
}

func (f *fakeRepo) Load(_ context.Context) (progress.UserProgress, error) {
	return f.loaded, nil
}
func (f *fakeRepo) Save(_ context.Context, _ progress.UserProgress) error { return nil }
func (f *fakeRepo) Reset(_ context.Context) error                        { return nil }

func beginnerProgress() progress.UserProgress {
	return progress.SelectLevel(progress.Default(), curriculum.LevelBeginner)
}

func TestMenu_LocksFollowUnlockState(t *testing.T) {
	p := beginnerProgress()
	h := New(Deps{Progress: &fakeRepo{}}, p)

	topics := curriculum.AllTopics()
	if len(h.menu.Items) != len(topics)+2 {
		t.Fatalf("menu has %d items, want %d topics plus settings and exit", len(h.menu.Items), len(topics))
	}

	for i, topic := range topics {
		wantDisabled := !p.TopicUnlocked(topic.ID)
		if h.menu.Items[i].Disabled != wantDisabled {
			t.Errorf("topic %s disabled = %v, want %v", topic.ID, h.menu.Items[i].Disabled, wantDisabled)
		}
	}
}

func TestOpenTopic_WithoutAIShowsNotice(t *testing.T) {
	h := New(Deps{Progress: &fakeRepo{}}, beginnerProgress())

	cmd := h.openTopic(curriculum.FirstTopic())
	if cmd != nil {
		t.Error("opening a lesson without AI services should not navigate")
	}
	if h.notice == "" {
		t.Error("expected a notice explaining the disabled AI features")
	}
}

func TestRefresh_ReloadsProgress(t *testing.T) {
	p := beginnerProgress()
	repo := &fakeRepo{loaded: progress.AwardQuizPass(p)}
	h := New(Deps{Progress: repo}, p)

	_, cmd := h.Update(screen.RefreshMsg{})
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	h.Update(cmd())

	if h.prog.XP != progress.QuizPassXP {
		t.Errorf("XP = %d, want %d after reload", h.prog.XP, progress.QuizPassXP)
	}
	if h.XP() != progress.QuizPassXP {
		t.Errorf("XP() = %d, want %d", h.XP(), progress.QuizPassXP)
	}
}

func TestView_ShowsGreetingAndStats(t *testing.T) {
	p := progress.UpdateName(beginnerProgress(), "Sam")
	h := New(Deps{Progress: &fakeRepo{}}, p)

	view := h.View(100, 30)
	if !strings.Contains(view, "Sam") {
		t.Error("view should greet the learner by name")
	}
	if !strings.Contains(view, "XP") {
		t.Error("view should show the XP stat")
	}
}

func TestExitItemQuits(t *testing.T) {
	h := New(Deps{Progress: &fakeRepo{}}, beginnerProgress())

	last := h.menu.Items[len(h.menu.Items)-1]
	if !strings.Contains(last.Label, "Exit") {
		t.Fatalf("last item = %q, want the exit entry", last.Label)
	}
	if cmd := last.Action(); cmd == nil {
		t.Error("exit should produce a quit command")
	}
}
