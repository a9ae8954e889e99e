package tutor

import "github.com/abhisek/maestro/internal/llm"

// ReplySchema defines the JSON shape of every tutoring turn. The quiz
// suggestion rides along with the reply instead of a separate tool call
// so that all providers can produce it through structured output.
var ReplySchema = &llm.Schema{
	Name:        "tutor-reply",
	Description: "A single tutoring reply with an optional quiz readiness signal",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "The tutor's message to the learner, starting with the lesson tag when a lesson is active",
			},
			"suggest_quiz": map[string]any{
				"type":        "boolean",
				"description": "True ONLY when the learner has completed the immersion drill and is ready for the assessment",
			},
			"suggestion_reason": map[string]any{
				"type":        "string",
				"description": "A short encouraging reason why they are ready. Empty when suggest_quiz is false.",
			},
		},
		"required":             []any{"reply", "suggest_quiz"},
		"additionalProperties": false,
	},
}
