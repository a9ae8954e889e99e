package session

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/ui/components"
	"github.com/abhisek/maestro/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *SessionScreen) View(width, height int) string {
	if s.confirmingQuit {
		return s.renderQuitConfirm(width, height)
	}

	cw := components.ContentWidth(width)
	inputArea := s.renderInputArea(cw)
	inputHeight := lipgloss.Height(inputArea) + 1

	transcript := s.renderTranscript(cw, height-inputHeight)

	body := lipgloss.JoinVertical(lipgloss.Left, transcript, "", inputArea)
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(body)
}

// renderTranscript renders the newest messages that fit the available
// rows, oldest rendered first.
func (s *SessionScreen) renderTranscript(cw, maxHeight int) string {
	var bubbles []string
	for _, m := range s.msgs {
		bubbles = append(bubbles, s.renderBubble(m, cw))
	}
	if s.waiting {
		bubbles = append(bubbles, s.renderTyping())
	}

	// Walk backwards until the height budget is spent.
	used := 0
	start := len(bubbles)
	for i := len(bubbles) - 1; i >= 0; i-- {
		h := lipgloss.Height(bubbles[i]) + 1
		if used+h > maxHeight && start < len(bubbles) {
			break
		}
		used += h
		start = i
	}

	return strings.Join(bubbles[start:], "\n\n")
}

func (s *SessionScreen) renderBubble(m progress.Message, cw int) string {
	bubbleWidth := cw * 3 / 4

	if m.Role == progress.RoleUser {
		bubble := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Foreground(theme.Text).
			Padding(0, 1).
			Width(bubbleWidth).
			Render(m.Text)
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Right).Render(bubble)
	}

	text := m.Text
	if m.IsAudioPlaying {
		text += "  🔊"
	}
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Maestro")
	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(bubbleWidth).
		Render(label + "\n" + text)
	return bubble
}

func (s *SessionScreen) renderTyping() string {
	frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render(frame + " Maestro is typing...")
}

func (s *SessionScreen) renderInputArea(cw int) string {
	var rows []string

	if s.suggestQuiz && !s.completed {
		banner := "💡 Ready for the quiz? Press Ctrl+T."
		if s.suggestionReason != "" {
			banner = "💡 " + s.suggestionReason + " Press Ctrl+T for the quiz."
		}
		rows = append(rows, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1).
			Width(cw-2).
			Render(banner))
	}

	if s.generating != "" {
		frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
		rows = append(rows, theme.Hint.Render(frame+" Preparing "+s.generating+"..."))
	}

	if s.notice != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).Render(s.notice))
	}

	rows = append(rows, s.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *SessionScreen) renderQuitConfirm(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Leave this lesson?"),
		"",
		theme.Body.Render("Your conversation is saved. Press Y to leave, N to stay."),
	)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(components.Card(content, components.ContentWidth(width)))
}
