package progress

import (
	"slices"
	"testing"

	"github.com/abhisek/maestro/internal/curriculum"
)

// completeTopic walks every subtopic of a topic through CompleteSubTopic.
func completeTopic(t *testing.T, p UserProgress, topicID string) UserProgress {
	t.Helper()
	topic, err := curriculum.GetTopic(topicID)
	if err != nil {
		t.Fatalf("test topic %q: %v", topicID, err)
	}
	for _, st := range topic.SubTopics {
		p = CompleteSubTopic(p, topicID, st.ID)
	}
	return p
}

func TestCompleteSubTopic_Rewards(t *testing.T) {
	p := Default()
	p = CompleteSubTopic(p, "module-1", "1.1")

	if !p.SubTopicCompleted("1.1") {
		t.Error("1.1 should be completed")
	}
	if p.XP != SubTopicXP {
		t.Errorf("XP = %d, want %d", p.XP, SubTopicXP)
	}
	if p.WordsLearned != SubTopicWords {
		t.Errorf("WordsLearned = %d, want %d", p.WordsLearned, SubTopicWords)
	}
}

func TestCompleteSubTopic_SetSemanticsRewardRegrants(t *testing.T) {
	p := Default()
	p = CompleteSubTopic(p, "module-1", "1.1")
	p = CompleteSubTopic(p, "module-1", "1.1")

	count := 0
	for _, id := range p.CompletedSubTopicIDs {
		if id == "1.1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("1.1 appears %d times in completed set, want 1", count)
	}
	// Re-completion re-grants the reward (skip/restart flow).
	if p.XP != 2*SubTopicXP {
		t.Errorf("XP = %d, want %d", p.XP, 2*SubTopicXP)
	}
}

func TestCompleteSubTopic_TopicCompletionIffAllSubTopics(t *testing.T) {
	p := Default()
	topic, _ := curriculum.GetTopic("module-1")

	// Complete all but the last subtopic: topic must not be complete.
	for _, st := range topic.SubTopics[:len(topic.SubTopics)-1] {
		p = CompleteSubTopic(p, "module-1", st.ID)
		if p.TopicCompleted("module-1") {
			t.Fatalf("module-1 marked complete after only %q", st.ID)
		}
	}

	last := topic.SubTopics[len(topic.SubTopics)-1]
	p = CompleteSubTopic(p, "module-1", last.ID)
	if !p.TopicCompleted("module-1") {
		t.Error("module-1 should be complete after all subtopics")
	}
}

func TestCompleteSubTopic_UnlocksNextTopic(t *testing.T) {
	p := Default()
	p = completeTopic(t, p, "module-1")

	if !p.TopicUnlocked("module-2") {
		t.Error("finishing module-1 should unlock module-2")
	}
	if p.TopicUnlocked("module-3") {
		t.Error("module-3 should still be locked")
	}
}

func TestCompleteSubTopic_LastTopicHasNoNext(t *testing.T) {
	p := UnlockAll(Default())
	p = completeTopic(t, p, "module-15")

	if !p.TopicCompleted("module-15") {
		t.Error("module-15 should be complete")
	}
}

func TestCompleteSubTopic_InvariantHoldsOverSequences(t *testing.T) {
	// Property: after any sequence of completions, a topic is in the
	// completed set iff every one of its subtopics is.
	p := SelectLevel(Default(), curriculum.LevelExpert)
	p = CompleteSubTopic(p, "module-11", "11.1")
	p = CompleteSubTopic(p, "module-11", "11.3")
	p = completeTopic(t, p, "module-11")
	p = CompleteSubTopic(p, "module-12", "12.1")

	for _, topic := range curriculum.AllTopics() {
		allDone := true
		for _, st := range topic.SubTopics {
			if !p.SubTopicCompleted(st.ID) {
				allDone = false
				break
			}
		}
		if got := p.TopicCompleted(topic.ID); got != allDone {
			t.Errorf("topic %s: completed=%v but subtopics-all-done=%v", topic.ID, got, allDone)
		}
	}
}

func TestCompleteSubTopic_UnknownIDsNoOp(t *testing.T) {
	p := Default()

	for _, tc := range []struct{ topicID, subTopicID string }{
		{"module-99", "1.1"},  // unknown topic
		{"module-1", "99.9"},  // unknown subtopic
		{"module-2", "1.1"},   // subtopic not a child of topic
	} {
		got := CompleteSubTopic(p, tc.topicID, tc.subTopicID)
		if got.XP != 0 || len(got.CompletedSubTopicIDs) != 0 {
			t.Errorf("CompleteSubTopic(%s, %s) should be a no-op", tc.topicID, tc.subTopicID)
		}
	}
}

func TestCompleteSubTopic_LockedTopicNoOp(t *testing.T) {
	p := Default()
	got := CompleteSubTopic(p, "module-2", "2.1")
	if got.XP != 0 || got.SubTopicCompleted("2.1") {
		t.Error("completing a subtopic of a locked topic should be a no-op")
	}
}

func TestSelectLevel_Beginner_ResetsToFirstTopic(t *testing.T) {
	p := Default()
	p = SelectLevel(p, curriculum.LevelExpert)
	p = completeTopic(t, p, "module-11")

	p = SelectLevel(p, curriculum.LevelBeginner)

	want := []string{curriculum.FirstTopic().ID}
	if !slices.Equal(p.UnlockedTopicIDs, want) {
		t.Errorf("UnlockedTopicIDs = %v, want %v", p.UnlockedTopicIDs, want)
	}
	if len(p.CompletedSubTopicIDs) != 0 {
		t.Errorf("CompletedSubTopicIDs = %v, want empty", p.CompletedSubTopicIDs)
	}
	if len(p.CompletedTopicIDs) != 0 {
		t.Errorf("CompletedTopicIDs = %v, want empty", p.CompletedTopicIDs)
	}
}

func TestSelectLevel_Intermediate_Placement(t *testing.T) {
	p := SelectLevel(Default(), curriculum.LevelIntermediate)

	// All Beginner topics unlocked and fully auto-completed.
	for _, topic := range curriculum.ByLevel(curriculum.LevelBeginner) {
		if !p.TopicUnlocked(topic.ID) {
			t.Errorf("beginner topic %s should be unlocked", topic.ID)
		}
		if !p.TopicCompleted(topic.ID) {
			t.Errorf("beginner topic %s should be completed", topic.ID)
		}
		for _, st := range topic.SubTopics {
			if !p.SubTopicCompleted(st.ID) {
				t.Errorf("beginner subtopic %s should be completed", st.ID)
			}
		}
	}

	// First Intermediate topic unlocked but not completed.
	first := curriculum.ByLevel(curriculum.LevelIntermediate)[0]
	if !p.TopicUnlocked(first.ID) {
		t.Errorf("first intermediate topic %s should be unlocked", first.ID)
	}
	if p.TopicCompleted(first.ID) {
		t.Errorf("first intermediate topic %s should not be completed", first.ID)
	}

	// Later Intermediate topics stay locked.
	rest := curriculum.ByLevel(curriculum.LevelIntermediate)[1:]
	for _, topic := range rest {
		if p.TopicUnlocked(topic.ID) {
			t.Errorf("topic %s should still be locked", topic.ID)
		}
	}
}

func TestSelectLevel_InvalidLevelNoOp(t *testing.T) {
	p := Default()
	got := SelectLevel(p, curriculum.Level("Wizard"))
	if got.HasLevel() {
		t.Error("invalid level should not be stored")
	}
}

func TestSetAndClearTopicHistory(t *testing.T) {
	p := Default()
	msgs := []Message{NewMessage(RoleModel, "hola"), NewMessage(RoleUser, "hola!")}

	p = SetTopicHistory(p, "1.1", msgs)
	if len(p.History("1.1")) != 2 {
		t.Fatalf("history length = %d, want 2", len(p.History("1.1")))
	}

	p = ClearTopicHistory(p, "1.1")
	if p.History("1.1") != nil {
		t.Error("history should be removed entirely")
	}
}

func TestSetTopicHistory_UnknownSubTopicNoOp(t *testing.T) {
	p := Default()
	p = SetTopicHistory(p, "99.9", []Message{NewMessage(RoleModel, "x")})
	if len(p.TopicHistory) != 0 {
		t.Error("unknown subtopic ID must not create a history entry")
	}
}

func TestRestartLesson(t *testing.T) {
	p := Default()
	p = SetTopicHistory(p, "1.1", []Message{NewMessage(RoleModel, "hola")})
	p = completeTopic(t, p, "module-1")

	p = RestartLesson(p, "1.1")

	if p.SubTopicCompleted("1.1") {
		t.Error("restarted lesson should not be completed")
	}
	if p.History("1.1") != nil {
		t.Error("restarted lesson should have no transcript")
	}
	if p.TopicCompleted("module-1") {
		t.Error("parent topic should no longer be completed")
	}
	// The follow-on unlock is not revoked.
	if !p.TopicUnlocked("module-2") {
		t.Error("module-2 stays unlocked after a restart")
	}
}

func TestAwards(t *testing.T) {
	p := Default()
	p = AwardQuizPass(p)
	if p.XP != QuizPassXP || p.WordsLearned != QuizPassWords {
		t.Errorf("after quiz pass: xp=%d words=%d", p.XP, p.WordsLearned)
	}
	p = AwardFlashcardReview(p)
	if p.XP != QuizPassXP+FlashcardXP {
		t.Errorf("after flashcards: xp=%d", p.XP)
	}
}

func TestUnlockAll(t *testing.T) {
	p := UnlockAll(Default())
	if len(p.UnlockedTopicIDs) != curriculum.TopicCount() {
		t.Errorf("unlocked %d topics, want %d", len(p.UnlockedTopicIDs), curriculum.TopicCount())
	}
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	p := Default()
	p = SetTopicHistory(p, "1.1", []Message{NewMessage(RoleModel, "hola")})
	before := len(p.CompletedSubTopicIDs)

	_ = CompleteSubTopic(p, "module-1", "1.1")
	_ = ClearTopicHistory(p, "1.1")
	_ = SelectLevel(p, curriculum.LevelExpert)

	if len(p.CompletedSubTopicIDs) != before {
		t.Error("CompleteSubTopic mutated its input")
	}
	if p.History("1.1") == nil {
		t.Error("ClearTopicHistory mutated its input")
	}
	if p.HasLevel() {
		t.Error("SelectLevel mutated its input")
	}
}
