package speech

// Voice is a prebuilt TTS voice name.
type Voice string

const (
	VoicePuck   Voice = "Puck"
	VoiceCharon Voice = "Charon"
	VoiceKore   Voice = "Kore"
	VoiceFenrir Voice = "Fenrir"
	VoiceZephyr Voice = "Zephyr"
)

// DefaultVoice is used when no preference is set.
const DefaultVoice = VoiceKore

// AllVoices returns the selectable voices in display order.
func AllVoices() []Voice {
	return []Voice{VoicePuck, VoiceCharon, VoiceKore, VoiceFenrir, VoiceZephyr}
}

// Valid reports whether v names a known voice.
func (v Voice) Valid() bool {
	switch v {
	case VoicePuck, VoiceCharon, VoiceKore, VoiceFenrir, VoiceZephyr:
		return true
	}
	return false
}

// Normalize returns v if valid, otherwise the default voice.
func Normalize(name string) Voice {
	v := Voice(name)
	if v.Valid() {
		return v
	}
	return DefaultVoice
}
