package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/maestro/internal/curriculum"
)

// SystemInstruction builds the tutoring persona prompt for a session.
// Topic and subTopic are optional; when both are set the instruction
// pins the conversation to that lesson and requires the lesson tag
// prefix on every reply.
func SystemInstruction(level curriculum.Level, topic *curriculum.Topic, subTopic *curriculum.SubTopic, userName string) string {
	name := userName
	if name == "" {
		name = "the user"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are "Sam's Maestro", a world-class Spanish language tutor.
Your goal is to help %s master Spanish from %s level.

CORE RULE: ONE CONCEPT AT A TIME.
Keep responses concise (max 3 sentences) but provide deep explanation over multiple turns.
Always be encouraging. Use a mix of Spanish and English appropriate for their level.`, name, level)

	if topic != nil && subTopic != nil {
		fmt.Fprintf(&b, `

CURRENT LESSON:
[Topic: %s | Sub-Topic: %s]
Goal: %s

STRUCTURE:
1. Vocab -> 2. Grammar -> 3. Culture -> 4. Drill (Roleplay) -> 5. Assessment.

When you feel they've mastered the drill for THIS specific sub-topic, set "suggest_quiz" to true with a short encouraging "suggestion_reason".

MANDATORY: Start every message with [%s].`, topic.Title, subTopic.Title, subTopic.Title, subTopic.Title)
	}

	return b.String()
}

// LiveSystemInstruction extends the session prompt for voice calls.
func LiveSystemInstruction(level curriculum.Level, topic *curriculum.Topic, subTopic *curriculum.SubTopic, userName string) string {
	return SystemInstruction(level, topic, subTopic, userName) +
		"\n\nLIVE MODE: You are in a voice call. Speak naturally. Use short sentences. Provide instant audio feedback."
}

// IntroMessage is the opening model message seeded into a fresh lesson.
func IntroMessage(topic curriculum.Topic, userName string) string {
	greeting := "¡Hola"
	if userName != "" {
		greeting += " " + userName
	}
	return fmt.Sprintf("%s! Welcome to %q. %s Let's start!", greeting, topic.Title, topic.Description)
}
