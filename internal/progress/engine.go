package progress

import (
	"slices"

	"github.com/abhisek/maestro/internal/curriculum"
)

// Reward amounts granted by transitions. Completing a subtopic again
// (via skip or restart) re-grants the reward; see DESIGN.md.
const (
	SubTopicXP    = 50
	SubTopicWords = 5
	QuizPassXP    = 100
	QuizPassWords = 15
	FlashcardXP   = 20
)

// Transitions are pure: each takes the current state by value and returns
// the next state. The caller (the UI layer) owns the single live instance
// and persists after every transition. Unknown curriculum IDs are no-ops.

// SelectLevel sets the proficiency level and recomputes unlock state as a
// placement: every topic strictly below the chosen level is unlocked and
// auto-completed, and the first topic at or above it is unlocked. Prior
// completion state is overwritten, not merged — choosing Beginner winds
// everything back to the first topic.
func SelectLevel(p UserProgress, level curriculum.Level) UserProgress {
	if !level.Valid() {
		return p
	}

	out := p.clone()
	out.Level = level
	out.CompletedTopicIDs = []string{}
	out.CompletedSubTopicIDs = []string{}
	out.UnlockedTopicIDs = []string{}

	for _, t := range curriculum.AllTopics() {
		if t.RequiredLevel.Below(level) {
			out.UnlockedTopicIDs = append(out.UnlockedTopicIDs, t.ID)
			out.CompletedTopicIDs = append(out.CompletedTopicIDs, t.ID)
			for _, st := range t.SubTopics {
				out.CompletedSubTopicIDs = append(out.CompletedSubTopicIDs, st.ID)
			}
			continue
		}
		// First topic at or above the chosen level is the frontier.
		out.UnlockedTopicIDs = append(out.UnlockedTopicIDs, t.ID)
		break
	}

	return out
}

// UpdateName sets the display name. The caller is responsible for not
// passing an empty string; the engine stores it as given.
func UpdateName(p UserProgress, name string) UserProgress {
	out := p.clone()
	out.UserName = name
	return out
}

// UpdatePreferences replaces the preferences wholesale.
func UpdatePreferences(p UserProgress, prefs Preferences) UserProgress {
	out := p.clone()
	out.Preferences = prefs
	return out
}

// CompleteSubTopic marks a subtopic done and grants its reward. When the
// last subtopic of the topic falls, the topic itself completes and the
// next topic in the chain unlocks. Set semantics on the completion sets;
// the XP and word reward is granted on every call.
func CompleteSubTopic(p UserProgress, topicID, subTopicID string) UserProgress {
	topic, err := curriculum.GetTopic(topicID)
	if err != nil {
		return p
	}
	parent, ok := curriculum.ParentTopic(subTopicID)
	if !ok || parent.ID != topicID {
		return p
	}
	if !p.TopicUnlocked(topicID) {
		return p
	}

	out := p.clone()
	out.CompletedSubTopicIDs = appendUnique(out.CompletedSubTopicIDs, subTopicID)

	allDone := true
	for _, st := range topic.SubTopics {
		if !slices.Contains(out.CompletedSubTopicIDs, st.ID) {
			allDone = false
			break
		}
	}
	if allDone {
		out.CompletedTopicIDs = appendUnique(out.CompletedTopicIDs, topicID)
		if next, ok := curriculum.NextTopic(topicID); ok {
			out.UnlockedTopicIDs = appendUnique(out.UnlockedTopicIDs, next.ID)
		}
	}

	out.XP += SubTopicXP
	out.WordsLearned += SubTopicWords
	return out
}

// SetTopicHistory replaces the stored transcript for a subtopic with the
// given full sequence. Callers always pass the complete updated history.
func SetTopicHistory(p UserProgress, subTopicID string, messages []Message) UserProgress {
	if _, err := curriculum.GetSubTopic(subTopicID); err != nil {
		return p
	}
	out := p.clone()
	out.TopicHistory[subTopicID] = slices.Clone(messages)
	return out
}

// ClearTopicHistory removes the transcript entry entirely. The next entry
// into that lesson is treated as first-time.
func ClearTopicHistory(p UserProgress, subTopicID string) UserProgress {
	if _, ok := p.TopicHistory[subTopicID]; !ok {
		return p
	}
	out := p.clone()
	delete(out.TopicHistory, subTopicID)
	return out
}

// RestartLesson wipes a subtopic back to not-started: transcript removed
// and the ID dropped from the completed set. The two steps always happen
// together so a restarted lesson never reads as completed.
func RestartLesson(p UserProgress, subTopicID string) UserProgress {
	out := p.clone()
	delete(out.TopicHistory, subTopicID)
	out.CompletedSubTopicIDs = slices.DeleteFunc(out.CompletedSubTopicIDs, func(id string) bool {
		return id == subTopicID
	})
	// The parent topic can no longer be complete.
	if parent, ok := curriculum.ParentTopic(subTopicID); ok {
		out.CompletedTopicIDs = slices.DeleteFunc(out.CompletedTopicIDs, func(id string) bool {
			return id == parent.ID
		})
	}
	return out
}

// AwardQuizPass grants the quiz-pass reward for a lesson assessment.
func AwardQuizPass(p UserProgress) UserProgress {
	out := p.clone()
	out.XP += QuizPassXP
	out.WordsLearned += QuizPassWords
	return out
}

// AwardFlashcardReview grants the small reward for finishing a deck.
func AwardFlashcardReview(p UserProgress) UserProgress {
	out := p.clone()
	out.XP += FlashcardXP
	return out
}

// UnlockAll opens every topic in the curriculum. Debug escape hatch.
func UnlockAll(p UserProgress) UserProgress {
	out := p.clone()
	out.UnlockedTopicIDs = out.UnlockedTopicIDs[:0]
	for _, t := range curriculum.AllTopics() {
		out.UnlockedTopicIDs = append(out.UnlockedTopicIDs, t.ID)
	}
	return out
}
