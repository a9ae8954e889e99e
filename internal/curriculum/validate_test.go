package curriculum

import (
	"strings"
	"testing"
)

func validTopicPair() []Topic {
	return []Topic{
		{ID: "t1", Title: "One", RequiredLevel: LevelBeginner, Order: 1,
			SubTopics: []SubTopic{{ID: "t1.1", Title: "First"}}},
		{ID: "t2", Title: "Two", RequiredLevel: LevelIntermediate, Order: 2,
			SubTopics: []SubTopic{{ID: "t2.1", Title: "Second"}}},
		{ID: "t3", Title: "Three", RequiredLevel: LevelExpert, Order: 3,
			SubTopics: []SubTopic{{ID: "t3.1", Title: "Third"}}},
	}
}

func TestValidateTopics_Valid(t *testing.T) {
	if err := validateTopics(validTopicPair()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTopics_DuplicateTopicID(t *testing.T) {
	topics := validTopicPair()
	topics[1].ID = "t1"
	err := validateTopics(topics)
	if err == nil || !strings.Contains(err.Error(), "duplicate topic ID") {
		t.Fatalf("expected duplicate topic ID error, got %v", err)
	}
}

func TestValidateTopics_DuplicateSubTopicIDAcrossTopics(t *testing.T) {
	topics := validTopicPair()
	topics[1].SubTopics[0].ID = "t1.1"
	err := validateTopics(topics)
	if err == nil || !strings.Contains(err.Error(), "appears in both") {
		t.Fatalf("expected cross-topic subtopic ID error, got %v", err)
	}
}

func TestValidateTopics_EmptySubTopics(t *testing.T) {
	topics := validTopicPair()
	topics[0].SubTopics = nil
	err := validateTopics(topics)
	if err == nil || !strings.Contains(err.Error(), "no subtopics") {
		t.Fatalf("expected no-subtopics error, got %v", err)
	}
}

func TestValidateTopics_LevelInterleaving(t *testing.T) {
	topics := validTopicPair()
	topics[0].RequiredLevel = LevelExpert
	topics[2].RequiredLevel = LevelBeginner
	err := validateTopics(topics)
	if err == nil || !strings.Contains(err.Error(), "ordered after a higher-level topic") {
		t.Fatalf("expected interleaving error, got %v", err)
	}
}

func TestValidateTopics_UnknownLevel(t *testing.T) {
	topics := validTopicPair()
	topics[0].RequiredLevel = Level("Wizard")
	err := validateTopics(topics)
	if err == nil || !strings.Contains(err.Error(), "unknown level") {
		t.Fatalf("expected unknown level error, got %v", err)
	}
}

func TestValidateTopics_DuplicateOrder(t *testing.T) {
	topics := validTopicPair()
	topics[1].Order = 1
	err := validateTopics(topics)
	if err == nil || !strings.Contains(err.Error(), "reuses order") {
		t.Fatalf("expected duplicate order error, got %v", err)
	}
}
