package curriculum

import (
	"fmt"
	"strings"
)

// validateTopics performs all structural checks on the given topic set.
// Returns a combined error describing all problems found, or nil if valid.
func validateTopics(topics []Topic) error {
	var errs []string

	topicIDs := make(map[string]bool, len(topics))
	subIDs := make(map[string]string) // subtopic ID -> owning topic ID
	orders := make(map[int]string)
	levelSet := make(map[Level]bool)

	for _, t := range topics {
		if topicIDs[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		topicIDs[t.ID] = true

		if owner, dup := orders[t.Order]; dup {
			errs = append(errs, fmt.Sprintf("topic %q reuses order %d of topic %q", t.ID, t.Order, owner))
		}
		orders[t.Order] = t.ID

		if !t.RequiredLevel.Valid() {
			errs = append(errs, fmt.Sprintf("topic %q has unknown level %q", t.ID, t.RequiredLevel))
		}
		levelSet[t.RequiredLevel] = true

		if len(t.SubTopics) == 0 {
			errs = append(errs, fmt.Sprintf("topic %q has no subtopics", t.ID))
		}

		for _, st := range t.SubTopics {
			if owner, dup := subIDs[st.ID]; dup {
				errs = append(errs, fmt.Sprintf("subtopic ID %q appears in both %q and %q", st.ID, owner, t.ID))
			}
			subIDs[st.ID] = t.ID

			if st.Title == "" {
				errs = append(errs, fmt.Sprintf("subtopic %q has no title", st.ID))
			}
		}
	}

	// Levels must not interleave: once the chain advances to a higher
	// level it must never fall back. A learner placed at Intermediate
	// relies on every Beginner topic preceding every Intermediate one.
	lastRank := -1
	for _, t := range topics {
		r := levelRank[t.RequiredLevel]
		if r < lastRank {
			errs = append(errs, fmt.Sprintf("topic %q (%s) is ordered after a higher-level topic", t.ID, t.RequiredLevel))
		}
		lastRank = r
	}

	for _, level := range AllLevels() {
		if !levelSet[level] {
			errs = append(errs, fmt.Sprintf("level %q has no topics", level))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
