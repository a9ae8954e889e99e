package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/flashcards"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/quiz"
	"github.com/abhisek/maestro/internal/router"
	"github.com/abhisek/maestro/internal/screen"
	sessionscreen "github.com/abhisek/maestro/internal/screens/session"
	"github.com/abhisek/maestro/internal/screens/settings"
	"github.com/abhisek/maestro/internal/speech"
	"github.com/abhisek/maestro/internal/store"
	"github.com/abhisek/maestro/internal/tutor"
	"github.com/abhisek/maestro/internal/ui/components"
	"github.com/abhisek/maestro/internal/ui/layout"
	"github.com/abhisek/maestro/internal/ui/theme"
)

// Deps bundles everything the learning screens need. Service fields are
// nil when no LLM provider is configured; screens degrade to read-only
// views of stored progress in that case.
type Deps struct {
	Progress store.ProgressRepo
	Tutor    *tutor.Service
	Quiz     *quiz.Service
	Cards    *flashcards.Service
	Synth    *speech.Synthesizer
	Player   speech.Player
}

// AIReady reports whether chat, quiz, and flashcard generation can run.
func (d Deps) AIReady() bool {
	return d.Tutor != nil && d.Quiz != nil && d.Cards != nil
}

// progressLoadedMsg carries a freshly loaded profile after a covered
// screen changed it.
type progressLoadedMsg struct {
	Progress progress.UserProgress
	Err      error
}

// HomeScreen is the curriculum dashboard.
type HomeScreen struct {
	deps   Deps
	prog   progress.UserProgress
	menu   components.Menu
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the dashboard over the given profile snapshot.
func New(deps Deps, p progress.UserProgress) *HomeScreen {
	h := &HomeScreen{deps: deps, prog: p}
	h.menu = h.buildMenu()
	return h
}

// buildMenu lays out one entry per topic plus settings and exit. The
// selected index survives rebuilds so a refresh does not jump the cursor.
func (h *HomeScreen) buildMenu() components.Menu {
	var items []components.MenuItem

	for _, topic := range curriculum.AllTopics() {
		topic := topic
		unlocked := h.prog.TopicUnlocked(topic.ID)
		items = append(items, components.MenuItem{
			Label:    h.topicLabel(topic, unlocked),
			Disabled: !unlocked,
			Action: func() tea.Cmd {
				return h.openTopic(topic)
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "⚙  Settings", Action: func() tea.Cmd {
			repo := h.deps.Progress
			p := h.prog
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(repo, p)}
			}
		}},
		components.MenuItem{Label: "⏻  Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	menu := components.NewMenu(items)
	if h.menu.Selected > 0 && h.menu.Selected < len(items) && !items[h.menu.Selected].Disabled {
		menu.Selected = h.menu.Selected
	}
	return menu
}

func (h *HomeScreen) topicLabel(topic curriculum.Topic, unlocked bool) string {
	icon := "🔒"
	switch {
	case h.prog.TopicCompleted(topic.ID):
		icon = "✅"
	case unlocked && h.topicStarted(topic):
		icon = "💬"
	case unlocked:
		icon = "🔓"
	}
	done := 0
	for _, st := range topic.SubTopics {
		if h.prog.SubTopicCompleted(st.ID) {
			done++
		}
	}
	return fmt.Sprintf("%s %s %s  %d/%d lessons", icon, topic.Emoji, topic.Title, done, len(topic.SubTopics))
}

func (h *HomeScreen) topicStarted(topic curriculum.Topic) bool {
	for _, st := range topic.SubTopics {
		if len(h.prog.History(st.ID)) > 0 || h.prog.SubTopicCompleted(st.ID) {
			return true
		}
	}
	return false
}

// openTopic enters the topic's next unfinished lesson, or its first
// lesson when everything is already done (review).
func (h *HomeScreen) openTopic(topic curriculum.Topic) tea.Cmd {
	if len(topic.SubTopics) == 0 {
		return nil
	}
	if !h.deps.AIReady() {
		h.notice = "AI features are disabled. Set a provider API key (for example MAESTRO_GEMINI_API_KEY) and restart."
		return nil
	}

	sub := topic.SubTopics[0]
	for _, st := range topic.SubTopics {
		if !h.prog.SubTopicCompleted(st.ID) {
			sub = st
			break
		}
	}
	if !progress.Enterable(h.prog, sub.ID) {
		h.notice = "Finish the previous lesson first."
		return nil
	}

	deps := h.deps
	p := h.prog
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: sessionscreen.New(sessionscreen.Deps{
				Progress: deps.Progress,
				Tutor:    deps.Tutor,
				Quiz:     deps.Quiz,
				Cards:    deps.Cards,
				Synth:    deps.Synth,
				Player:   deps.Player,
			}, p, topic, sub),
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// XP and Streak feed the header stats.
func (h *HomeScreen) XP() int     { return h.prog.XP }
func (h *HomeScreen) Streak() int { return h.prog.Streak }

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.RefreshMsg:
		return h, h.reload()

	case progressLoadedMsg:
		if msg.Err == nil {
			h.prog = msg.Progress
			h.menu = h.buildMenu()
		}
		return h, nil

	case tea.KeyMsg:
		h.notice = ""
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// reload pulls the profile back from the store after a child screen
// changed it.
func (h *HomeScreen) reload() tea.Cmd {
	repo := h.deps.Progress
	return func() tea.Msg {
		p, err := repo.Load(context.Background())
		return progressLoadedMsg{Progress: p, Err: err}
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string

	greeting := "¡Hola!"
	if h.prog.UserName != "" {
		greeting = fmt.Sprintf("¡Hola, %s!", h.prog.UserName)
	}
	sections = append(sections,
		theme.Title.Width(cw).Render(greeting),
		theme.Subtitle.Width(cw).Render(fmt.Sprintf("%s %s · ready for today's lesson?", h.prog.Level.Icon(), h.prog.Level)),
	)

	sections = append(sections, components.Card(h.renderStats(cw), cw))
	sections = append(sections, h.menu.View())

	if h.notice != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Width(cw).
			Align(lipgloss.Center).
			Render(h.notice))
	}

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) renderStats(cw int) string {
	stat := func(icon, value, label string) string {
		return lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(icon+" "+value),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(label),
		)
	}

	completed := 0
	for _, t := range curriculum.AllTopics() {
		if h.prog.TopicCompleted(t.ID) {
			completed++
		}
	}

	cols := []string{
		stat("★", fmt.Sprintf("%d", h.prog.XP), "XP"),
		stat("🔥", fmt.Sprintf("%d", h.prog.Streak), "day streak"),
		stat("📖", fmt.Sprintf("%d", h.prog.WordsLearned), "words"),
		stat("🏆", fmt.Sprintf("%d/%d", completed, curriculum.TopicCount()), "topics"),
	}

	total := 0
	for _, c := range cols {
		total += lipgloss.Width(c)
	}
	gap := (cw - total) / (len(cols) + 1)
	if gap < 1 {
		gap = 1
	}
	spacer := strings.Repeat(" ", gap)

	parts := []string{spacer}
	for _, c := range cols {
		parts = append(parts, c, spacer)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
