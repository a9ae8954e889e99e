package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/quiz"
	"github.com/abhisek/maestro/internal/router"
	"github.com/abhisek/maestro/internal/screen"
	"github.com/abhisek/maestro/internal/store"
	"github.com/abhisek/maestro/internal/ui/components"
	"github.com/abhisek/maestro/internal/ui/layout"
	"github.com/abhisek/maestro/internal/ui/theme"
)

// Params configures a quiz run. Done produces the message delivered to
// the screen underneath once the learner finishes.
type Params struct {
	Repo      store.ProgressRepo
	Progress  progress.UserProgress
	TopicID   string
	SubTopic  curriculum.SubTopic
	Questions []quiz.Question
	Done      func(passed bool, p progress.UserProgress) tea.Msg
}

// savedMsg confirms the post-quiz profile write.
type savedMsg struct {
	Err error
}

// QuizScreen walks the learner through the generated questions one at a
// time, then grades the run. A pass completes the lesson.
type QuizScreen struct {
	params  Params
	current int
	answers []int
	choice  components.MultiChoice
	result  *quiz.Result
	updated progress.UserProgress
	done    bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen over validated questions.
func New(params Params) *QuizScreen {
	q := &QuizScreen{
		params:  params,
		answers: make([]int, 0, len(params.Questions)),
	}
	if len(params.Questions) > 0 {
		first := params.Questions[0]
		q.choice = components.NewMultiChoice(first.Question, first.Options, first.CorrectAnswerIndex)
	}
	return q
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return "Quiz · " + q.params.SubTopic.Title
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to lesson"},
		}
	}
	if q.choice.Submitted {
		return []layout.KeyHint{
			{Key: "any key", Description: "Next question"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if saved, ok := msg.(savedMsg); ok {
		_ = saved // a failed write keeps the in-memory result; next save retries
		return q, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return q, nil
	}

	// Result view: Enter (or Esc) returns to the lesson.
	if q.result != nil {
		switch kmsg.String() {
		case "enter", "esc":
			return q, q.finish()
		}
		return q, nil
	}

	// Answer revealed: any key advances.
	if q.choice.Submitted {
		return q.advance()
	}

	var cmd tea.Cmd
	q.choice, cmd = q.choice.Update(msg)
	return q, cmd
}

// advance records the revealed answer and moves to the next question,
// grading the run after the last one.
func (q *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	q.answers = append(q.answers, q.choice.ChosenIndex)
	q.current++

	if q.current < len(q.params.Questions) {
		next := q.params.Questions[q.current]
		q.choice = components.NewMultiChoice(next.Question, next.Options, next.CorrectAnswerIndex)
		return q, nil
	}

	result := quiz.Grade(q.params.Questions, q.answers)
	q.result = &result
	return q, q.applyResult()
}

// applyResult updates and persists the profile: a pass completes the
// subtopic and earns the quiz bonus, a fail changes nothing durable.
func (q *QuizScreen) applyResult() tea.Cmd {
	p := q.params.Progress
	if q.result.Passed {
		p = progress.CompleteSubTopic(p, q.params.TopicID, q.params.SubTopic.ID)
		p = progress.AwardQuizPass(p)
	}
	q.updated = p

	if !q.result.Passed {
		return nil
	}
	repo := q.params.Repo
	return func() tea.Msg {
		return savedMsg{Err: repo.Save(context.Background(), p)}
	}
}

func (q *QuizScreen) finish() tea.Cmd {
	if q.done {
		return nil
	}
	q.done = true
	passed := q.result.Passed
	updated := q.updated
	doneFn := q.params.Done
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return doneFn(passed, updated) },
	)
}

func (q *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	if q.result != nil {
		content = q.renderResult(cw)
	} else {
		content = q.renderQuestion(cw)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (q *QuizScreen) renderQuestion(cw int) string {
	header := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", q.current+1, len(q.params.Questions)))

	body := q.choice.View()

	if q.choice.Submitted {
		current := q.params.Questions[q.current]
		verdict := theme.Correct.Render("¡Correcto!")
		if !q.choice.IsCorrect() {
			verdict = theme.Incorrect.Render("Not quite.")
		}
		body += "\n" + verdict
		if current.Explanation != "" {
			body += "\n" + theme.Hint.Render(current.Explanation)
		}
	}

	bar := components.NewProgressBar("", float64(q.current)/float64(len(q.params.Questions)), false, cw-4)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		components.Card(body, cw),
		"",
		bar.View(),
	)
}

func (q *QuizScreen) renderResult(cw int) string {
	r := q.result

	var lines []string
	if r.Passed {
		lines = append(lines,
			theme.Title.Render("🎉 ¡Aprobado!"),
			"",
			theme.Body.Render(fmt.Sprintf("You scored %d/%d. Lesson complete!", r.Score, r.Total)),
			theme.Body.Render(fmt.Sprintf("★ +%d XP", progress.QuizPassXP+progress.SubTopicXP)),
		)
	} else {
		lines = append(lines,
			theme.Title.Render("Casi..."),
			"",
			theme.Body.Render(fmt.Sprintf("You scored %d/%d. You need %.0f%% to pass.", r.Score, r.Total, quiz.PassThreshold*100)),
			theme.Hint.Render("Review the lesson with your maestro and try again."),
		)
	}

	return components.HighlightCard(strings.Join(lines, "\n"), cw)
}
