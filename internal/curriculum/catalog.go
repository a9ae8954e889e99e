package curriculum

import (
	"fmt"
	"slices"
	"sort"
)

// catalog holds the topic chain with precomputed indexes.
type catalog struct {
	topics      []Topic
	topicByID   map[string]*Topic
	subByID     map[string]*SubTopic
	parentOf    map[string]*Topic  // subtopic ID -> owning topic
	predecessor map[string]string  // subtopic ID -> previous subtopic ID within its topic
	byLevel     map[Level][]Topic
}

// c is the package-level catalog singleton, set by init() in seed.go.
var c *catalog

// buildCatalog constructs the catalog from a slice of topics, sorted by
// their declared order.
func buildCatalog(topics []Topic) *catalog {
	sorted := slices.Clone(topics)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	ct := &catalog{
		topics:      sorted,
		topicByID:   make(map[string]*Topic, len(sorted)),
		subByID:     make(map[string]*SubTopic),
		parentOf:    make(map[string]*Topic),
		predecessor: make(map[string]string),
		byLevel:     make(map[Level][]Topic),
	}

	for i := range ct.topics {
		t := &ct.topics[i]
		ct.topicByID[t.ID] = t
		ct.byLevel[t.RequiredLevel] = append(ct.byLevel[t.RequiredLevel], *t)

		for j := range t.SubTopics {
			st := &t.SubTopics[j]
			ct.subByID[st.ID] = st
			ct.parentOf[st.ID] = t
			if j > 0 {
				ct.predecessor[st.ID] = t.SubTopics[j-1].ID
			}
		}
	}

	return ct
}

// GetTopic returns a topic by ID, or an error if not found.
func GetTopic(id string) (Topic, error) {
	t, ok := c.topicByID[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic not found: %q", id)
	}
	return *t, nil
}

// GetSubTopic returns a subtopic by ID, or an error if not found.
func GetSubTopic(id string) (SubTopic, error) {
	st, ok := c.subByID[id]
	if !ok {
		return SubTopic{}, fmt.Errorf("subtopic not found: %q", id)
	}
	return *st, nil
}

// ParentTopic returns the topic that owns the given subtopic ID.
func ParentTopic(subTopicID string) (Topic, bool) {
	t, ok := c.parentOf[subTopicID]
	if !ok {
		return Topic{}, false
	}
	return *t, true
}

// AllTopics returns all topics in unlock order.
func AllTopics() []Topic {
	return slices.Clone(c.topics)
}

// FirstTopic returns the first topic in the unlock chain.
func FirstTopic() Topic {
	return c.topics[0]
}

// NextTopic returns the topic that follows the given topic in the unlock
// chain, or false when the topic is last (or unknown).
func NextTopic(topicID string) (Topic, bool) {
	for i := range c.topics {
		if c.topics[i].ID == topicID {
			if i+1 < len(c.topics) {
				return c.topics[i+1], true
			}
			return Topic{}, false
		}
	}
	return Topic{}, false
}

// PreviousSubTopic returns the prerequisite subtopic for the given
// subtopic ID, or false when it is the first in its topic (or unknown).
func PreviousSubTopic(subTopicID string) (SubTopic, bool) {
	prevID, ok := c.predecessor[subTopicID]
	if !ok {
		return SubTopic{}, false
	}
	st := c.subByID[prevID]
	return *st, true
}

// ByLevel returns all topics whose required level matches, in unlock order.
func ByLevel(level Level) []Topic {
	return slices.Clone(c.byLevel[level])
}

// TopicCount returns the number of topics in the curriculum.
func TopicCount() int {
	return len(c.topics)
}

// SubTopicCount returns the total number of subtopics across all topics.
func SubTopicCount() int {
	return len(c.subByID)
}

// Validate checks the catalog for structural issues.
func Validate() error {
	return validateTopics(c.topics)
}
