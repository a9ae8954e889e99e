package progress

import "github.com/abhisek/maestro/internal/curriculum"

// LessonState is a subtopic's state relative to the learner.
type LessonState int

const (
	StateLocked     LessonState = iota // Parent topic locked or predecessor not completed
	StateAvailable                     // Enterable, no transcript yet
	StateInProgress                    // Has a transcript, not completed
	StateCompleted                     // In the completed set
)

// Icon returns the display icon for a lesson state.
func (s LessonState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateAvailable:
		return "🔓"
	case StateInProgress:
		return "💬"
	case StateCompleted:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a lesson state.
func (s LessonState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StateInProgress:
		return "In Progress"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// StateOf computes the lesson state of a subtopic: the parent topic must
// be unlocked and the predecessor subtopic (when one exists) completed
// before the lesson is enterable. Unknown IDs read as locked.
func StateOf(p UserProgress, subTopicID string) LessonState {
	parent, ok := curriculum.ParentTopic(subTopicID)
	if !ok {
		return StateLocked
	}
	if !p.TopicUnlocked(parent.ID) {
		return StateLocked
	}
	if prev, ok := curriculum.PreviousSubTopic(subTopicID); ok && !p.SubTopicCompleted(prev.ID) {
		return StateLocked
	}

	if p.SubTopicCompleted(subTopicID) {
		return StateCompleted
	}
	if len(p.History(subTopicID)) > 0 {
		return StateInProgress
	}
	return StateAvailable
}

// Enterable reports whether the learner may open the lesson chat for the
// subtopic.
func Enterable(p UserProgress, subTopicID string) bool {
	return StateOf(p, subTopicID) != StateLocked
}
