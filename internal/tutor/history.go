package tutor

import (
	"github.com/abhisek/maestro/internal/llm"
	"github.com/abhisek/maestro/internal/progress"
)

// historyWindow bounds how much saved conversation is replayed to the
// model on each turn.
const historyWindow = 20

// prepareHistory converts saved lesson history into provider messages.
// Roles must strictly alternate, so consecutive messages with the same
// role are collapsed to the first one. The caller appends the new user
// turn separately, so a trailing user message is dropped.
func prepareHistory(history []progress.Message) []llm.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	out := make([]llm.Message, 0, len(history))
	var lastRole progress.Role
	for i, m := range history {
		if i > 0 && m.Role == lastRole {
			continue
		}
		role := llm.RoleUser
		if m.Role == progress.RoleModel {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Text})
		lastRole = m.Role
	}

	if len(out) > 0 && out[len(out)-1].Role == llm.RoleUser {
		out = out[:len(out)-1]
	}

	return out
}
