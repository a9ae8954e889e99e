package progress

import (
	"slices"
	"time"

	"github.com/abhisek/maestro/internal/curriculum"
)

// Voice names accepted by the speech synthesizer.
const DefaultVoice = "Kore"

// Preferences holds the learner's playback settings. Replaced wholesale
// by UpdatePreferences.
type Preferences struct {
	AutoPlayAudio bool    `json:"autoPlayAudio"`
	VoiceName     string  `json:"voiceName"`
	PlaybackSpeed float64 `json:"playbackSpeed"`
}

// DefaultPreferences returns the preferences of a fresh profile.
func DefaultPreferences() Preferences {
	return Preferences{
		AutoPlayAudio: false,
		VoiceName:     DefaultVoice,
		PlaybackSpeed: 1.0,
	}
}

// UserProgress is the complete durable learner state. Values are treated
// as immutable: every transition in engine.go copies before changing, so
// a held snapshot never mutates underneath the UI.
type UserProgress struct {
	UserName             string               `json:"userName,omitempty"`
	Level                curriculum.Level     `json:"level,omitempty"`
	XP                   int                  `json:"xp"`
	Streak               int                  `json:"streak"`
	LastLoginDate        time.Time            `json:"lastLoginDate,omitzero"`
	WordsLearned         int                  `json:"wordsLearned"`
	CompletedTopicIDs    []string             `json:"completedTopicIds"`
	CompletedSubTopicIDs []string             `json:"completedSubTopicIds"`
	UnlockedTopicIDs     []string             `json:"unlockedTopicIds"`
	TopicHistory         map[string][]Message `json:"topicHistory"`
	Preferences          Preferences          `json:"preferences"`
}

// Default returns the state of a first-run learner: no level chosen, only
// the first topic unlocked.
func Default() UserProgress {
	return UserProgress{
		CompletedTopicIDs:    []string{},
		CompletedSubTopicIDs: []string{},
		UnlockedTopicIDs:     []string{curriculum.FirstTopic().ID},
		TopicHistory:         map[string][]Message{},
		Preferences:          DefaultPreferences(),
	}
}

// HasLevel reports whether the learner has chosen a proficiency level.
func (p UserProgress) HasLevel() bool {
	return p.Level.Valid()
}

// TopicUnlocked reports whether the learner may enter the given topic.
func (p UserProgress) TopicUnlocked(topicID string) bool {
	return slices.Contains(p.UnlockedTopicIDs, topicID)
}

// TopicCompleted reports whether every subtopic of the topic is done.
func (p UserProgress) TopicCompleted(topicID string) bool {
	return slices.Contains(p.CompletedTopicIDs, topicID)
}

// SubTopicCompleted reports whether the given subtopic is done.
func (p UserProgress) SubTopicCompleted(subTopicID string) bool {
	return slices.Contains(p.CompletedSubTopicIDs, subTopicID)
}

// History returns the stored transcript for a subtopic, or nil.
func (p UserProgress) History(subTopicID string) []Message {
	return p.TopicHistory[subTopicID]
}

// Sanitized returns a copy with transient message fields stripped from
// every transcript, the shape that goes to disk.
func (p UserProgress) Sanitized() UserProgress {
	out := p
	out.TopicHistory = make(map[string][]Message, len(p.TopicHistory))
	for id, msgs := range p.TopicHistory {
		out.TopicHistory[id] = SanitizeMessages(msgs)
	}
	return out
}

// clone returns a deep-enough copy for a transition to mutate: slices
// and the history map are fresh, message slices are shared until replaced.
func (p UserProgress) clone() UserProgress {
	out := p
	out.CompletedTopicIDs = slices.Clone(p.CompletedTopicIDs)
	out.CompletedSubTopicIDs = slices.Clone(p.CompletedSubTopicIDs)
	out.UnlockedTopicIDs = slices.Clone(p.UnlockedTopicIDs)
	out.TopicHistory = make(map[string][]Message, len(p.TopicHistory))
	for id, msgs := range p.TopicHistory {
		out.TopicHistory[id] = msgs
	}
	return out
}

// appendUnique appends v to s when not already present.
func appendUnique(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
