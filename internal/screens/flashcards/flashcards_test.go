package flashcards

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	cardsvc "github.com/abhisek/maestro/internal/flashcards"
	"github.com/abhisek/maestro/internal/progress"
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

func testDeck() []cardsvc.Card {
	return []cardsvc.Card{
		{Front: "el perro", Back: "the dog", Example: "El perro es grande."},
		{Front: "el gato", Back: "the cat", Example: "El gato duerme."},
	}
}

func newTestDeck(repo *fakeRepo) *FlashcardScreen {
	topic := curriculum.FirstTopic()
	return New(Params{
		Repo:     repo,
		Progress: progress.Default(),
		SubTopic: topic.SubTopics[0],
		Cards:    testDeck(),
		Done: func(p progress.UserProgress) tea.Msg {
			return nil
		},
	})
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestFlashcards_FlipThenAdvance(t *testing.T) {
	f := newTestDeck(&fakeRepo{})

	if f.flipped {
		t.Fatal("cards start front side up")
	}

	// First enter flips, second advances.
	f.Update(enter())
	if !f.flipped {
		t.Error("enter on the front should flip")
	}
	f.Update(enter())
	if f.current != 1 {
		t.Errorf("current = %d, want 1", f.current)
	}
	if f.flipped {
		t.Error("a new card starts front side up")
	}
}

func TestFlashcards_SpaceFlipsBothWays(t *testing.T) {
	f := newTestDeck(&fakeRepo{})

	f.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !f.flipped {
		t.Error("space should flip to the back")
	}
	f.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if f.flipped {
		t.Error("space should flip back to the front")
	}
}

func TestFlashcards_FinishAwardsReview(t *testing.T) {
	repo := &fakeRepo{}
	f := newTestDeck(repo)

	f.Update(enter())
	f.Update(enter())
	f.Update(enter())
	_, cmd := f.Update(enter()) // advancing past the last card finishes

	if !f.finished {
		t.Fatal("expected the deck to be finished")
	}
	if f.updated.XP != progress.FlashcardXP {
		t.Errorf("XP = %d, want %d", f.updated.XP, progress.FlashcardXP)
	}

	if cmd == nil {
		t.Fatal("expected a save command on finish")
	}
	cmd()
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d times, want 1", len(repo.saved))
	}
	if repo.saved[0].XP != progress.FlashcardXP {
		t.Errorf("persisted XP = %d, want %d", repo.saved[0].XP, progress.FlashcardXP)
	}
}

func TestFlashcards_EscForfeitsBonus(t *testing.T) {
	repo := &fakeRepo{}
	f := newTestDeck(repo)

	f.Update(enter())
	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if cmd == nil {
		t.Fatal("expected a navigation command on esc")
	}
	if f.updated.XP != 0 {
		t.Errorf("XP = %d, want 0 after leaving early", f.updated.XP)
	}
	if len(repo.saved) != 0 {
		t.Errorf("leaving early must not persist, saved %d times", len(repo.saved))
	}
}

func TestFlashcards_PreviousCard(t *testing.T) {
	f := newTestDeck(&fakeRepo{})

	f.Update(enter())
	f.Update(enter())
	if f.current != 1 {
		t.Fatalf("current = %d, want 1", f.current)
	}

	f.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if f.current != 0 {
		t.Errorf("current = %d, want 0 after going back", f.current)
	}
}

func TestFlashcards_ViewRenders(t *testing.T) {
	f := newTestDeck(&fakeRepo{})
	if f.View(100, 30) == "" {
		t.Error("expected non-empty card view")
	}
}
