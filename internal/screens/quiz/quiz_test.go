package quiz

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maestro/internal/curriculum"
	"github.com/abhisek/maestro/internal/progress"
	quizsvc "github.com/abhisek/maestro/internal/quiz"
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

func testQuestions() []quizsvc.Question {
	return []quizsvc.Question{
		{Question: "How do you say 'hello'?", Options: []string{"Hola", "Adiós", "Gracias", "Sí"}, CorrectAnswerIndex: 0},
		{Question: "How do you say 'thank you'?", Options: []string{"Hola", "Por favor", "Gracias", "No"}, CorrectAnswerIndex: 2},
		{Question: "How do you say 'goodbye'?", Options: []string{"Adiós", "Hola", "Bien", "Mal"}, CorrectAnswerIndex: 0},
	}
}

func newTestQuiz(repo *fakeRepo) (*QuizScreen, *[]tea.Msg) {
	var done []tea.Msg
	topic := curriculum.FirstTopic()
	sub := topic.SubTopics[0]
	q := New(Params{
		Repo:      repo,
		Progress:  progress.SelectLevel(progress.Default(), curriculum.LevelBeginner),
		TopicID:   topic.ID,
		SubTopic:  sub,
		Questions: testQuestions(),
		Done: func(passed bool, p progress.UserProgress) tea.Msg {
			done = append(done, passed)
			return nil
		},
	})
	return q, &done
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

// answer submits the given option index for the current question and
// dismisses the reveal.
func answer(t *testing.T, q *QuizScreen, idx int) {
	t.Helper()
	for q.choice.Selected < idx {
		q.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	q.Update(enter())
	if !q.choice.Submitted {
		t.Fatal("expected choice to be submitted after enter")
	}
	q.Update(enter()) // any key advances
}

func TestQuiz_AllCorrectPasses(t *testing.T) {
	repo := &fakeRepo{}
	q, _ := newTestQuiz(repo)

	answer(t, q, 0)
	answer(t, q, 2)
	answer(t, q, 0)

	if q.result == nil {
		t.Fatal("expected a result after the last question")
	}
	if !q.result.Passed || q.result.Score != 3 {
		t.Errorf("result = %+v, want passed with score 3", q.result)
	}
	if !q.updated.SubTopicCompleted(q.params.SubTopic.ID) {
		t.Error("passing should complete the subtopic")
	}
	wantXP := progress.SubTopicXP + progress.QuizPassXP
	if q.updated.XP != wantXP {
		t.Errorf("XP = %d, want %d", q.updated.XP, wantXP)
	}
}

func TestQuiz_FailDoesNotComplete(t *testing.T) {
	repo := &fakeRepo{}
	q, _ := newTestQuiz(repo)

	// One of three correct is below the pass threshold.
	answer(t, q, 0)
	answer(t, q, 0)
	answer(t, q, 1)

	if q.result == nil {
		t.Fatal("expected a result")
	}
	if q.result.Passed {
		t.Error("1/3 should not pass")
	}
	if q.updated.SubTopicCompleted(q.params.SubTopic.ID) {
		t.Error("failing must not complete the subtopic")
	}
	if q.updated.XP != 0 {
		t.Errorf("XP = %d, want 0 on a fail", q.updated.XP)
	}
}

func TestQuiz_PassPersists(t *testing.T) {
	repo := &fakeRepo{}
	q, _ := newTestQuiz(repo)

	answer(t, q, 0)
	answer(t, q, 2)

	// Last question: grading happens on the advance, which returns the
	// save command.
	q.Update(enter())
	_, cmd := q.Update(enter())
	if cmd == nil {
		t.Fatal("expected a save command after a passing run")
	}
	cmd()

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d times, want 1", len(repo.saved))
	}
	if !repo.saved[0].SubTopicCompleted(q.params.SubTopic.ID) {
		t.Error("persisted profile should have the subtopic completed")
	}
}

func TestQuiz_FinishEmitsDoneAfterResult(t *testing.T) {
	repo := &fakeRepo{}
	q, _ := newTestQuiz(repo)

	answer(t, q, 0)
	answer(t, q, 2)
	answer(t, q, 0)

	_, cmd := q.Update(enter())
	if cmd == nil {
		t.Fatal("expected a navigation command from the result view")
	}
	if !q.done {
		t.Error("finish should be latched")
	}

	// A second enter must not navigate again.
	_, cmd = q.Update(enter())
	if cmd != nil {
		t.Error("finish must only fire once")
	}
}

func TestQuiz_ViewRenders(t *testing.T) {
	repo := &fakeRepo{}
	q, _ := newTestQuiz(repo)

	if q.View(100, 30) == "" {
		t.Error("expected non-empty question view")
	}

	answer(t, q, 0)
	answer(t, q, 2)
	answer(t, q, 0)

	if q.View(100, 30) == "" {
		t.Error("expected non-empty result view")
	}
}
