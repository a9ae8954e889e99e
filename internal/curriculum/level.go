package curriculum

// Level represents a learner proficiency level.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelExpert       Level = "Expert"
)

// AllLevels returns all levels in ascending order of proficiency.
func AllLevels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelExpert}
}

// levelRank maps each level to its position in the proficiency ordering.
var levelRank = map[Level]int{
	LevelBeginner:     0,
	LevelIntermediate: 1,
	LevelExpert:       2,
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// Below reports whether l is strictly below other in the proficiency ordering.
// Unknown levels compare below everything.
func (l Level) Below(other Level) bool {
	return levelRank[l] < levelRank[other]
}

// CEFRBand returns the CEFR band the level maps to.
func (l Level) CEFRBand() string {
	switch l {
	case LevelBeginner:
		return "A1-A2"
	case LevelIntermediate:
		return "B1-B2"
	case LevelExpert:
		return "C1-C2"
	default:
		return ""
	}
}

// Icon returns the display icon for a level.
func (l Level) Icon() string {
	switch l {
	case LevelBeginner:
		return "🌱"
	case LevelIntermediate:
		return "🌿"
	case LevelExpert:
		return "🌳"
	default:
		return "?"
	}
}
