package settings

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/speech"
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

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestToggleAutoPlayPersists(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo, progress.Default())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	if !s.prog.Preferences.AutoPlayAudio {
		t.Error("enter on the first row should turn autoplay on")
	}

	cmd()
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d times, want 1", len(repo.saved))
	}
	if !repo.saved[0].Preferences.AutoPlayAudio {
		t.Error("persisted profile should have autoplay on")
	}
}

func TestVoiceCyclesThroughAllVoices(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo, progress.Default())
	s.selected = rowVoice

	start := s.prog.Preferences.VoiceName
	voices := speech.AllVoices()

	for i := 0; i < len(voices); i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	}
	if s.prog.Preferences.VoiceName != start {
		t.Errorf("cycling %d times should wrap back to %q, got %q",
			len(voices), start, s.prog.Preferences.VoiceName)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.prog.Preferences.VoiceName == start {
		t.Error("stepping left should change the voice")
	}
	if !speech.Voice(s.prog.Preferences.VoiceName).Valid() {
		t.Errorf("voice %q should always be a known voice", s.prog.Preferences.VoiceName)
	}
}

func TestSpeedSteps(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo, progress.Default())
	s.selected = rowSpeed

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.prog.Preferences.PlaybackSpeed != 1.25 {
		t.Errorf("speed = %v, want 1.25 after one step up from 1.0", s.prog.Preferences.PlaybackSpeed)
	}
}

func TestNameEditing(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo, progress.Default())
	s.selected = rowName

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.editingName {
		t.Fatal("enter on the name row should start editing")
	}

	for _, r := range "Sam" {
		s.Update(keyPress(r))
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a save command after the name edit")
	}
	if s.prog.UserName != "Sam" {
		t.Errorf("UserName = %q, want Sam", s.prog.UserName)
	}

	cmd()
	if len(repo.saved) != 1 || repo.saved[0].UserName != "Sam" {
		t.Error("name change should persist")
	}
}

func TestEscNavigatesBack(t *testing.T) {
	s := New(&fakeRepo{}, progress.Default())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("esc should produce a navigation command")
	}
}
