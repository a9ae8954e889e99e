package quiz

import (
	"fmt"

	"github.com/abhisek/maestro/internal/curriculum"
)

const beginnerGuideline = `MANDATORY BEGINNER RULES:
1. THE 'question' FIELD MUST BE IN ENGLISH.
2. THE 'options' MUST BE IN ENGLISH (except for the Spanish word being tested).
3. THE 'explanation' MUST BE IN ENGLISH.
Example Question: 'What is the Spanish word for "Apple"?'
Example Options: ['Manzana', 'Pera', 'Naranja', 'Uva']
DO NOT ASK QUESTIONS IN SPANISH FOR BEGINNERS.`

const intermediateGuideline = "Use a mix of English and Spanish for questions. Options should mostly be in Spanish."

const expertGuideline = "Use Spanish only for everything (Advanced/Expert)."

// languageGuideline selects the per-level language rules for generation.
func languageGuideline(level curriculum.Level) string {
	switch level {
	case curriculum.LevelBeginner:
		return beginnerGuideline
	case curriculum.LevelIntermediate:
		return intermediateGuideline
	default:
		return expertGuideline
	}
}

// buildPrompt constructs the generation request for one lesson's quiz.
func buildPrompt(topic curriculum.Topic, subTopic curriculum.SubTopic, level curriculum.Level) string {
	return fmt.Sprintf(`Generate exactly %d multiple-choice questions for: %q within the context of %q.
Target Proficiency: %s.
%s`, QuestionCount, subTopic.Title, topic.Title, level, languageGuideline(level))
}
