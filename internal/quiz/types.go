package quiz

// QuestionCount is how many questions every quiz carries.
const QuestionCount = 10

// PassThreshold is the minimum fraction of correct answers to pass.
const PassThreshold = 0.7

// Question is a single multiple-choice quiz question.
type Question struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// Result summarizes a graded quiz attempt.
type Result struct {
	Score  int
	Total  int
	Passed bool
}

// Grade scores the learner's answers against the quiz. Answers beyond
// the question count are ignored; missing answers count as wrong.
func Grade(questions []Question, answers []int) Result {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswerIndex {
			score++
		}
	}
	return Result{
		Score:  score,
		Total:  len(questions),
		Passed: Passed(score, len(questions)),
	}
}

// Passed reports whether a score clears the pass threshold.
func Passed(score, total int) bool {
	if total == 0 {
		return false
	}
	return float64(score)/float64(total) >= PassThreshold
}
