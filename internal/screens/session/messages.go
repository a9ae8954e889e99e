package session

import (
	"time"

	"github.com/abhisek/maestro/internal/flashcards"
	"github.com/abhisek/maestro/internal/progress"
	"github.com/abhisek/maestro/internal/quiz"
	"github.com/abhisek/maestro/internal/tutor"
)

// replyMsg is sent when the tutor's turn comes back from the provider.
type replyMsg struct {
	Response *tutor.ChatResponse
	Err      error
}

// quizReadyMsg is sent when quiz generation finishes.
type quizReadyMsg struct {
	Questions []quiz.Question
	Err       error
}

// deckReadyMsg is sent when flashcard generation finishes.
type deckReadyMsg struct {
	Cards []flashcards.Card
	Err   error
}

// quizDoneMsg comes back from the quiz screen with the updated profile.
type quizDoneMsg struct {
	Passed   bool
	Progress progress.UserProgress
}

// deckDoneMsg comes back from the flashcard screen with the updated profile.
type deckDoneMsg struct {
	Progress progress.UserProgress
}

// audioReadyMsg is sent when speech synthesis for a message finishes.
type audioReadyMsg struct {
	MessageID string
	PCM       []byte
	Err       error
}

// audioDoneMsg is sent when scheduled playback for a message has run out.
type audioDoneMsg struct {
	MessageID string
}

// savedMsg confirms a background profile write.
type savedMsg struct {
	Err error
}

// spinnerTickMsg animates the typing indicator.
type spinnerTickMsg time.Time
