package flashcards

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/flashcards"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/router"
	"github.com/abhisek/maestro/internal/screen"
	"github.com/abhisek/maestro/internal/store"
	"github.com/abhisek/maestro/internal/ui/components"
	"github.com/abhisek/maestro/internal/ui/layout"
	"github.com/abhisek/maestro/internal/ui/theme"
)

// Params configures a flashcard review. Done produces the message
// delivered to the screen underneath when the deck is finished.
type Params struct {
	Repo     store.ProgressRepo
	Progress progress.UserProgress
	SubTopic curriculum.SubTopic
	Cards    []flashcards.Card
	Done     func(p progress.UserProgress) tea.Msg
}

// savedMsg confirms the post-review profile write.
type savedMsg struct {
	Err error
}

// FlashcardScreen flips through a generated deck front-to-back. Working
// through the whole deck earns the review bonus.
type FlashcardScreen struct {
	params   Params
	current  int
	flipped  bool
	finished bool
	updated  progress.UserProgress
	done     bool
}

var _ screen.Screen = (*FlashcardScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardScreen)(nil)

// New creates a flashcard screen over a validated deck.
func New(params Params) *FlashcardScreen {
	return &FlashcardScreen{params: params}
}

func (f *FlashcardScreen) Init() tea.Cmd {
	return nil
}

func (f *FlashcardScreen) Title() string {
	return "Flashcards · " + f.params.SubTopic.Title
}

func (f *FlashcardScreen) KeyHints() []layout.KeyHint {
	if f.finished {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to lesson"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
	}
	if f.flipped {
		hints = append(hints, layout.KeyHint{Key: "Enter/→", Description: "Next card"})
	}
	if f.current > 0 {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Previous"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Stop early"})
	return hints
}

func (f *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if saved, ok := msg.(savedMsg); ok {
		_ = saved
		return f, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	if f.finished {
		switch kmsg.String() {
		case "enter", "esc":
			return f, f.leave()
		}
		return f, nil
	}

	switch kmsg.String() {
	case "esc":
		// Leaving early forfeits the bonus.
		f.updated = f.params.Progress
		return f, f.leave()

	case " ", "space":
		f.flipped = !f.flipped

	case "enter", "right", "l":
		if !f.flipped {
			f.flipped = true
			return f, nil
		}
		return f.advance()

	case "left", "h":
		if f.current > 0 {
			f.current--
			f.flipped = false
		}
	}

	return f, nil
}

// advance moves to the next card; finishing the deck grants the review
// bonus and persists it.
func (f *FlashcardScreen) advance() (screen.Screen, tea.Cmd) {
	f.flipped = false
	f.current++
	if f.current < len(f.params.Cards) {
		return f, nil
	}

	f.finished = true
	f.updated = progress.AwardFlashcardReview(f.params.Progress)

	repo := f.params.Repo
	p := f.updated
	return f, func() tea.Msg {
		return savedMsg{Err: repo.Save(context.Background(), p)}
	}
}

func (f *FlashcardScreen) leave() tea.Cmd {
	if f.done {
		return nil
	}
	f.done = true
	updated := f.updated
	doneFn := f.params.Done
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return doneFn(updated) },
	)
}

func (f *FlashcardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	if f.finished {
		content = components.HighlightCard(lipgloss.JoinVertical(lipgloss.Center,
			theme.Title.Render("Deck done!"),
			"",
			theme.Body.Render(fmt.Sprintf("%d cards reviewed.", len(f.params.Cards))),
			theme.Body.Render(fmt.Sprintf("★ +%d XP", progress.FlashcardXP)),
		), cw)
	} else {
		content = f.renderCard(cw)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (f *FlashcardScreen) renderCard(cw int) string {
	card := f.params.Cards[f.current]

	counter := theme.Subtitle.Render(fmt.Sprintf("Card %d of %d", f.current+1, len(f.params.Cards)))

	var face string
	if f.flipped {
		face = lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(card.Back),
			"",
			theme.Hint.Render(card.Example),
		)
	} else {
		face = lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(card.Front),
			"",
			theme.Hint.Render("Space to flip"),
		)
	}

	faceBox := lipgloss.NewStyle().
		Width(cw - 6).
		Align(lipgloss.Center).
		Padding(2, 0).
		Render(face)

	return lipgloss.JoinVertical(lipgloss.Center,
		counter,
		"",
		components.Card(faceBox, cw),
	)
}
