package quiz

import "github.com/abhisek/maestro/internal/llm"

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A set of multiple-choice Spanish quiz questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question prompt, phrased per the language guidelines for the learner's level",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Exactly 4 answer options where exactly one is correct",
				},
				"correctAnswerIndex": map[string]any{
					"type":        "integer",
					"description": "Zero-based index of the correct option",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "A short explanation of why the answer is correct",
				},
			},
			"required":             []any{"question", "options", "correctAnswerIndex", "explanation"},
			"additionalProperties": false,
		},
	},
}
