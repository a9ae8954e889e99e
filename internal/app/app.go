package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maestro/internal/flashcards"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/quiz"
	"github.com/abhisek/maestro/internal/router"
	"github.com/abhisek/maestro/internal/screen"
	"github.com/abhisek/maestro/internal/screens/home"
	"github.com/abhisek/maestro/internal/screens/welcome"
	"github.com/abhisek/maestro/internal/speech"
	"github.com/abhisek/maestro/internal/store"
	"github.com/abhisek/maestro/internal/tutor"
	"github.com/abhisek/maestro/internal/ui/layout"
)

// Options carries the wired services into the TUI. AI service fields may
// be nil when no provider is configured; the app still runs with the AI
// features disabled.
type Options struct {
	Progress   store.ProgressRepo
	Tutor      *tutor.Service
	Quiz       *quiz.Service
	Flashcards *flashcards.Service
	Synth      *speech.Synthesizer
	Player     speech.Player

	// InitialProgress is the profile loaded at startup, streak already
	// touched by the repo.
	InitialProgress progress.UserProgress
}

// statsProvider is implemented by screens that know the current XP and
// streak; the header falls back to the last seen values otherwise.
type statsProvider interface {
	XP() int
	Streak() int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
	xp     int
	streak int
}

// newAppModel builds the screen graph: welcome first, replaced by home
// once onboarding is done or skipped.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Progress: opts.Progress,
		Tutor:    opts.Tutor,
		Quiz:     opts.Quiz,
		Cards:    opts.Flashcards,
		Synth:    opts.Synth,
		Player:   opts.Player,
	}

	welcomeScreen := welcome.New(opts.Progress, opts.InitialProgress, func(p progress.UserProgress) screen.Screen {
		return home.New(deps, p)
	})

	return AppModel{
		router: router.New(welcomeScreen),
		xp:     opts.InitialProgress.XP,
		streak: opts.InitialProgress.Streak,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)

	if sp, ok := m.router.Active().(statsProvider); ok {
		m.xp = sp.XP()
		m.streak = sp.Streak()
	}

	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.xp, m.streak, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
