package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/router"
	"github.com/abhisek/maestro/internal/screen"
	"github.com/abhisek/maestro/internal/speech"
	"github.com/abhisek/maestro/internal/store"
	"github.com/abhisek/maestro/internal/ui/components"
	"github.com/abhisek/maestro/internal/ui/layout"
	"github.com/abhisek/maestro/internal/ui/theme"
)

// playbackSpeeds are the selectable playback rates, matching the speeds
// the scheduler accepts.
var playbackSpeeds = []float64{0.75, 1.0, 1.25, 1.5}

const (
	rowAutoPlay = iota
	rowVoice
	rowSpeed
	rowName
	rowCount
)

// savedMsg confirms a background preferences write.
type savedMsg struct {
	Err error
}

// SettingsScreen edits the learner's preferences and display name.
// Every change persists immediately.
type SettingsScreen struct {
	repo store.ProgressRepo
	prog progress.UserProgress

	selected    int
	editingName bool
	nameInput   components.TextInput
	notice      string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen over the current profile.
func New(repo store.ProgressRepo, p progress.UserProgress) *SettingsScreen {
	return &SettingsScreen{
		repo:      repo,
		prog:      p,
		nameInput: components.NewTextInput("Your name", false, 24),
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editingName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save name"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "←/→/Enter", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.notice = "Save failed: " + msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.editingName {
		var cmd tea.Cmd
		s.nameInput, cmd = s.nameInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.editingName {
		switch msg.String() {
		case "enter":
			s.editingName = false
			name := strings.TrimSpace(s.nameInput.Value())
			if name == "" || name == s.prog.UserName {
				return s, nil
			}
			s.prog = progress.UpdateName(s.prog, name)
			return s, s.persist()
		case "esc":
			s.editingName = false
			return s, nil
		}
		var cmd tea.Cmd
		s.nameInput, cmd = s.nameInput.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "esc":
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return screen.RefreshMsg{} },
		)

	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < rowCount-1 {
			s.selected++
		}

	case "left", "h":
		return s, s.change(-1)
	case "right", "l", "enter":
		return s, s.change(1)
	}
	return s, nil
}

// change applies a step to the selected row and persists the result.
func (s *SettingsScreen) change(dir int) tea.Cmd {
	prefs := s.prog.Preferences

	switch s.selected {
	case rowAutoPlay:
		prefs.AutoPlayAudio = !prefs.AutoPlayAudio

	case rowVoice:
		voices := speech.AllVoices()
		idx := 0
		for i, v := range voices {
			if string(v) == prefs.VoiceName {
				idx = i
				break
			}
		}
		idx = (idx + dir + len(voices)) % len(voices)
		prefs.VoiceName = string(voices[idx])

	case rowSpeed:
		idx := 0
		for i, sp := range playbackSpeeds {
			if sp == prefs.PlaybackSpeed {
				idx = i
				break
			}
		}
		idx = (idx + dir + len(playbackSpeeds)) % len(playbackSpeeds)
		prefs.PlaybackSpeed = playbackSpeeds[idx]

	case rowName:
		s.editingName = true
		s.nameInput = components.NewTextInput("Your name", false, 24)
		return s.nameInput.Init()
	}

	s.prog = progress.UpdatePreferences(s.prog, prefs)
	s.notice = ""
	return s.persist()
}

func (s *SettingsScreen) persist() tea.Cmd {
	repo := s.repo
	p := s.prog
	return func() tea.Msg {
		return savedMsg{Err: repo.Save(context.Background(), p)}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	prefs := s.prog.Preferences

	onOff := "off"
	if prefs.AutoPlayAudio {
		onOff = "on"
	}
	name := s.prog.UserName
	if name == "" {
		name = "(not set)"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Auto-play audio", onOff},
		{"Voice", prefs.VoiceName},
		{"Playback speed", fmt.Sprintf("%.2gx", prefs.PlaybackSpeed)},
		{"Name", name},
	}

	var lines []string
	for i, row := range rows {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected && !s.editingName {
			prefix = "▸ "
			style = theme.Selected
		}

		value := row.value
		if i == rowName && s.editingName {
			value = s.nameInput.View()
		}

		pad := cw - 10 - len(prefix) - lipgloss.Width(row.label) - lipgloss.Width(value)
		if pad < 1 {
			pad = 1
		}
		lines = append(lines, style.Render(prefix+row.label)+strings.Repeat(" ", pad)+value)
	}

	body := strings.Join(lines, "\n\n")
	if s.notice != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Settings"),
		"",
		components.Card(body, cw),
	)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
