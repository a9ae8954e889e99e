package progress

import (
	"testing"

	"github.com/abhisek/maestro/internal/curriculum"
)

func TestStateOf_FreshProfile(t *testing.T) {
	p := Default()

	if got := StateOf(p, "1.1"); got != StateAvailable {
		t.Errorf("1.1 state = %s, want Available", got.Label())
	}
	// Later subtopics gate on their predecessor.
	if got := StateOf(p, "1.2"); got != StateLocked {
		t.Errorf("1.2 state = %s, want Locked", got.Label())
	}
	// Locked topic locks all of its subtopics.
	if got := StateOf(p, "2.1"); got != StateLocked {
		t.Errorf("2.1 state = %s, want Locked", got.Label())
	}
}

func TestStateOf_LinearGatingHoldsEverywhere(t *testing.T) {
	// Property: subtopic i (i>0) is never enterable unless subtopic i-1
	// is completed, across all topics.
	p := UnlockAll(Default())
	p = CompleteSubTopic(p, "module-1", "1.1")

	for _, topic := range curriculum.AllTopics() {
		for i, st := range topic.SubTopics {
			if i == 0 {
				continue
			}
			prev := topic.SubTopics[i-1]
			if Enterable(p, st.ID) && !p.SubTopicCompleted(prev.ID) {
				t.Errorf("%s enterable while predecessor %s incomplete", st.ID, prev.ID)
			}
		}
	}

	if !Enterable(p, "1.2") {
		t.Error("1.2 should be enterable once 1.1 is completed")
	}
}

func TestStateOf_ProgressionLifecycle(t *testing.T) {
	p := Default()

	p = SetTopicHistory(p, "1.1", []Message{NewMessage(RoleModel, "hola")})
	if got := StateOf(p, "1.1"); got != StateInProgress {
		t.Errorf("state = %s, want In Progress", got.Label())
	}

	p = CompleteSubTopic(p, "module-1", "1.1")
	if got := StateOf(p, "1.1"); got != StateCompleted {
		t.Errorf("state = %s, want Completed", got.Label())
	}

	// Restart cycles back to available; completion is not terminal.
	p = RestartLesson(p, "1.1")
	if got := StateOf(p, "1.1"); got != StateAvailable {
		t.Errorf("state after restart = %s, want Available", got.Label())
	}
}

func TestStateOf_UnknownID(t *testing.T) {
	if got := StateOf(Default(), "99.9"); got != StateLocked {
		t.Errorf("unknown subtopic state = %s, want Locked", got.Label())
	}
}

func TestSanitized(t *testing.T) {
	p := Default()
	msg := NewMessage(RoleModel, "hola")
	msg.IsAudioPlaying = true
	msg.Audio = []byte{1, 2, 3}
	p = SetTopicHistory(p, "1.1", []Message{msg})

	clean := p.Sanitized()
	got := clean.History("1.1")[0]
	if got.IsAudioPlaying || got.Audio != nil {
		t.Error("Sanitized should strip transient playback fields")
	}
	// The live copy keeps its playback state.
	if !p.History("1.1")[0].IsAudioPlaying {
		t.Error("Sanitized must not mutate the source")
	}
}
