package welcome

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/screen"
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

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome(p progress.UserProgress) (*WelcomeScreen, *int) {
	factoryCalls := 0
	factory := func(progress.UserProgress) screen.Screen {
		factoryCalls++
		return &stubScreen{}
	}
	return New(&fakeRepo{}, p, factory), &factoryCalls
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestSplashAdvancesToLevelSelectOnFirstRun(t *testing.T) {
	w, calls := newTestWelcome(progress.Default())

	sendTicks(w, 20)
	if w.phase != phaseLevel {
		t.Errorf("phase = %d, want phaseLevel after the splash", w.phase)
	}
	if *calls != 0 {
		t.Error("home must not be built before onboarding finishes")
	}
}

func TestSplashSkipsToHomeForReturningLearner(t *testing.T) {
	p := progress.SelectLevel(progress.Default(), curriculum.LevelBeginner)
	w, calls := newTestWelcome(p)

	_, cmd := w.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	if *calls != 1 {
		t.Errorf("home factory called %d times, want 1", *calls)
	}
}

func TestKeypressSkipsSplash(t *testing.T) {
	w, _ := newTestWelcome(progress.Default())

	w.Update(keyPress('x'))
	if w.phase != phaseLevel {
		t.Errorf("phase = %d, want phaseLevel after skipping the splash", w.phase)
	}
}

func TestLevelSelectionMovesToNameEntry(t *testing.T) {
	w, _ := newTestWelcome(progress.Default())
	sendTicks(w, 20)

	// Second menu item is Intermediate.
	w.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if w.phase != phaseName {
		t.Fatalf("phase = %d, want phaseName", w.phase)
	}
	if w.chosenLevel != curriculum.LevelIntermediate {
		t.Errorf("chosenLevel = %q, want Intermediate", w.chosenLevel)
	}
}

func TestNameEntrySavesAndTransitions(t *testing.T) {
	w, calls := newTestWelcome(progress.Default())
	sendTicks(w, 20)

	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // Beginner
	for _, r := range "Sam" {
		w.Update(keyPress(r))
	}
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a save command")
	}

	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok {
		t.Fatalf("msg = %T, want savedMsg", msg)
	}
	if saved.Err != nil {
		t.Fatalf("save error: %v", saved.Err)
	}
	if saved.Progress.Level != curriculum.LevelBeginner {
		t.Errorf("Level = %q, want Beginner", saved.Progress.Level)
	}
	if saved.Progress.UserName != "Sam" {
		t.Errorf("UserName = %q, want Sam", saved.Progress.UserName)
	}

	_, cmd = w.Update(saved)
	if cmd == nil {
		t.Fatal("expected a transition command after saving")
	}
	if *calls != 1 {
		t.Errorf("home factory called %d times, want 1", *calls)
	}
}

func TestBannerCompactFallback(t *testing.T) {
	wide := RenderBanner(100)
	if !strings.Contains(wide, "█") {
		t.Error("wide banner should use the block art")
	}
	narrow := RenderBanner(40)
	if !strings.Contains(narrow, bannerCompact) {
		t.Error("narrow banner should use the compact wordmark")
	}
}
