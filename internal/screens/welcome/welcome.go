package welcome

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/router"
	"github.com/abhisek/maestro/internal/screen"
	"github.com/abhisek/maestro/internal/store"
	"github.com/abhisek/maestro/internal/ui/components"
	"github.com/abhisek/maestro/internal/ui/layout"
	"github.com/abhisek/maestro/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	splashDur    = 1500 * time.Millisecond
)

type phase int

const (
	phaseSplash phase = iota
	phaseLevel
	phaseName
	phaseSaving
)

type tickMsg time.Time

// savedMsg is sent when the onboarding profile write finishes.
type savedMsg struct {
	Progress progress.UserProgress
	Err      error
}

// WelcomeScreen runs first-launch onboarding: a splash, proficiency
// level selection, and name entry. Returning learners skip straight to
// home after the splash.
type WelcomeScreen struct {
	repo        store.ProgressRepo
	prog        progress.UserProgress
	homeFactory func(progress.UserProgress) screen.Screen

	phase        phase
	elapsed      time.Duration
	tickCount    int
	levelMenu    components.Menu
	chosenLevel  curriculum.Level
	nameInput    components.TextInput
	errMsg       string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen produced by
// homeFactory once onboarding is done (or skipped).
func New(repo store.ProgressRepo, p progress.UserProgress, homeFactory func(progress.UserProgress) screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		repo:        repo,
		prog:        p,
		homeFactory: homeFactory,
		nameInput:   components.NewTextInput("What should Sam call you?", false, 24),
	}

	items := make([]components.MenuItem, 0, len(curriculum.AllLevels()))
	for _, lvl := range curriculum.AllLevels() {
		lvl := lvl
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%s %s (%s)", lvl.Icon(), lvl, lvl.CEFRBand()),
			Action: func() tea.Cmd {
				return w.selectLevel(lvl)
			},
		})
	}
	w.levelMenu = components.NewMenu(items)

	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	switch w.phase {
	case phaseLevel:
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "Choose level"},
			{Key: "Enter", Description: "Select"},
		}
	case phaseName:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start learning"},
		}
	}
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.phase != phaseSplash {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= splashDur {
			return w.leaveSplash()
		}
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case savedMsg:
		if msg.Err != nil {
			// Keep going with the in-memory profile; the next save retries.
			w.errMsg = msg.Err.Error()
		}
		return w, w.transition(msg.Progress)

	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}

	if w.phase == phaseName {
		var cmd tea.Cmd
		w.nameInput, cmd = w.nameInput.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch w.phase {
	case phaseSplash:
		// Any key skips the splash.
		return w.leaveSplash()

	case phaseLevel:
		var cmd tea.Cmd
		w.levelMenu, cmd = w.levelMenu.Update(msg)
		return w, cmd

	case phaseName:
		if msg.String() == "enter" {
			w.phase = phaseSaving
			return w, w.save()
		}
		var cmd tea.Cmd
		w.nameInput, cmd = w.nameInput.Update(msg)
		return w, cmd
	}
	return w, nil
}

// leaveSplash advances past the splash: returning learners go straight
// to home, first runs continue to level selection.
func (w *WelcomeScreen) leaveSplash() (screen.Screen, tea.Cmd) {
	if w.prog.HasLevel() {
		return w, w.transition(w.prog)
	}
	w.phase = phaseLevel
	return w, nil
}

func (w *WelcomeScreen) selectLevel(lvl curriculum.Level) tea.Cmd {
	w.chosenLevel = lvl
	w.phase = phaseName
	return w.nameInput.Init()
}

// save applies the chosen level and name and persists the profile off
// the UI thread.
func (w *WelcomeScreen) save() tea.Cmd {
	p := progress.SelectLevel(w.prog, w.chosenLevel)
	if name := strings.TrimSpace(w.nameInput.Value()); name != "" {
		p = progress.UpdateName(p, name)
	}
	repo := w.repo
	return func() tea.Msg {
		err := repo.Save(context.Background(), p)
		return savedMsg{Progress: p, Err: err}
	}
}

func (w *WelcomeScreen) transition(p progress.UserProgress) tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory(p)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))

	switch w.phase {
	case phaseSplash:
		sections = append(sections, theme.Subtitle.Render("Learn Spanish with Sam's AI maestro"))
		if w.tickCount%10 >= 5 {
			sections = append(sections, theme.Hint.Render("Press any key"))
		} else {
			sections = append(sections, "")
		}

	case phaseLevel:
		sections = append(sections,
			theme.Title.Render("¡Bienvenido!"),
			theme.Subtitle.Render("How much Spanish do you already speak?"),
			"",
			w.levelMenu.View(),
		)

	case phaseName, phaseSaving:
		sections = append(sections,
			theme.Title.Render(fmt.Sprintf("%s %s it is.", w.chosenLevel.Icon(), w.chosenLevel)),
			theme.Subtitle.Render("And your name? (optional, Enter to skip)"),
			"",
			w.nameInput.View(),
		)
		if w.errMsg != "" {
			sections = append(sections, theme.Hint.Render("Could not save yet: "+w.errMsg))
		}
	}

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
