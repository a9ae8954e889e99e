package curriculum

import "testing"

func TestGetTopic_Exists(t *testing.T) {
	topic, err := GetTopic("module-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic.Title != "Identity & Intro" {
		t.Errorf("got title %q, want %q", topic.Title, "Identity & Intro")
	}
	if topic.RequiredLevel != LevelBeginner {
		t.Errorf("got level %q, want %q", topic.RequiredLevel, LevelBeginner)
	}
	if len(topic.SubTopics) != 4 {
		t.Errorf("got %d subtopics, want 4", len(topic.SubTopics))
	}
}

func TestGetTopic_NotFound(t *testing.T) {
	_, err := GetTopic("nonexistent")
	if err == nil {
		t.Fatal("expected error for nonexistent topic, got nil")
	}
}

func TestAllTopics_CountAndOrder(t *testing.T) {
	all := AllTopics()
	if len(all) != 15 {
		t.Fatalf("got %d topics, want 15", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Order <= all[i-1].Order {
			t.Errorf("topic %q (order %d) not after %q (order %d)",
				all[i].ID, all[i].Order, all[i-1].ID, all[i-1].Order)
		}
	}
}

func TestFirstTopic(t *testing.T) {
	if got := FirstTopic().ID; got != "module-1" {
		t.Errorf("FirstTopic = %q, want module-1", got)
	}
}

func TestNextTopic(t *testing.T) {
	next, ok := NextTopic("module-1")
	if !ok || next.ID != "module-2" {
		t.Errorf("NextTopic(module-1) = %q, %v; want module-2, true", next.ID, ok)
	}

	if _, ok := NextTopic("module-15"); ok {
		t.Error("NextTopic(module-15) should report false for the last topic")
	}
	if _, ok := NextTopic("nonexistent"); ok {
		t.Error("NextTopic(nonexistent) should report false")
	}
}

func TestParentTopic(t *testing.T) {
	parent, ok := ParentTopic("7.3")
	if !ok || parent.ID != "module-7" {
		t.Errorf("ParentTopic(7.3) = %q, %v; want module-7, true", parent.ID, ok)
	}
	if _, ok := ParentTopic("99.9"); ok {
		t.Error("ParentTopic(99.9) should report false")
	}
}

func TestPreviousSubTopic_Chain(t *testing.T) {
	prev, ok := PreviousSubTopic("1.2")
	if !ok || prev.ID != "1.1" {
		t.Errorf("PreviousSubTopic(1.2) = %q, %v; want 1.1, true", prev.ID, ok)
	}

	// First subtopic of a topic has no predecessor.
	if _, ok := PreviousSubTopic("1.1"); ok {
		t.Error("PreviousSubTopic(1.1) should report false")
	}
	// Chains do not cross topic boundaries.
	if _, ok := PreviousSubTopic("2.1"); ok {
		t.Error("PreviousSubTopic(2.1) should report false")
	}
}

func TestByLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  int
	}{
		{LevelBeginner, 6},
		{LevelIntermediate, 4},
		{LevelExpert, 5},
	}
	for _, tt := range tests {
		topics := ByLevel(tt.level)
		if len(topics) != tt.want {
			t.Errorf("ByLevel(%q): got %d topics, want %d", tt.level, len(topics), tt.want)
		}
	}
}

func TestLevelOrdering(t *testing.T) {
	if !LevelBeginner.Below(LevelIntermediate) {
		t.Error("Beginner should be below Intermediate")
	}
	if !LevelIntermediate.Below(LevelExpert) {
		t.Error("Intermediate should be below Expert")
	}
	if LevelExpert.Below(LevelBeginner) {
		t.Error("Expert should not be below Beginner")
	}
	if LevelBeginner.Below(LevelBeginner) {
		t.Error("a level is not below itself")
	}
}

func TestValidate_Seed(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed curriculum invalid: %v", err)
	}
}
