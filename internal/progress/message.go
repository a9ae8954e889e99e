package progress

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the sender of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn in a lesson transcript. IsAudioPlaying and Audio
// exist only for the lifetime of the process; they are stripped before
// persistence.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	IsAudioPlaying bool   `json:"-"`
	Audio          []byte `json:"-"`
}

// NewMessage creates a message with a fresh ID and the current time.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// Sanitize returns a copy of the message with transient playback state
// cleared, suitable for persistence.
func (m Message) Sanitize() Message {
	m.IsAudioPlaying = false
	m.Audio = nil
	return m
}

// SanitizeMessages returns a copy of the transcript with every message
// sanitized.
func SanitizeMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Sanitize()
	}
	return out
}
