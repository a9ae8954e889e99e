package speech

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hola, ¿cómo estás?", "Hola, ¿cómo estás?"},
		{"lesson tag", "[Greetings] ¡Buenos días!", "¡Buenos días!"},
		{"markdown", "**Hola** _amigo_ `mundo`", "Hola amigo mundo"},
		{"parenthetical", "Hola (this means hello) amigo", "Hola  amigo"},
		{"all at once", "[1.1] **Hola** (hi)", "Hola"},
		{"empty", "", ""},
		{"only tag", "[Greetings]", ""},
		{"single rune", "a", ""},
		{"two runes keep", "sí", "sí"},
		{"whitespace only after strip", "[x] (y) * ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeVoice(t *testing.T) {
	if got := Normalize("Puck"); got != VoicePuck {
		t.Errorf("Normalize(Puck) = %q", got)
	}
	if got := Normalize("Robot"); got != DefaultVoice {
		t.Errorf("Normalize(Robot) = %q, want default", got)
	}
	if got := Normalize(""); got != DefaultVoice {
		t.Errorf("Normalize(empty) = %q, want default", got)
	}
}
