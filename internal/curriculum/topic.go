package curriculum

// SubTopic is the smallest curriculum unit: one lesson's worth of
// vocabulary and grammar. SubTopic IDs are unique across the whole
// curriculum, not just within their parent topic.
type SubTopic struct {
	ID          string
	Title       string
	Description string
}

// Topic is a top-level curriculum module containing an ordered list of
// subtopics. Subtopic order within a topic is a strict prerequisite
// chain; topic order is a strict unlock chain across the curriculum.
type Topic struct {
	ID            string
	Title         string
	Description   string
	Emoji         string
	RequiredLevel Level
	Order         int
	SubTopics     []SubTopic
}
