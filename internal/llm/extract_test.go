package llm

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"reply":"hola"}`, `{"reply":"hola"}`},
		{"plain array", `[1,2,3]`, `[1,2,3]`},
		{"json fence", "```json\n{\"reply\":\"hola\"}\n```", `{"reply":"hola"}`},
		{"bare fence", "```\n{\"reply\":\"hola\"}\n```", `{"reply":"hola"}`},
		{"prose then fence", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy!", `{"a":1}`},
		{"prose around object", `Sure! {"a":1} Hope that helps.`, `{"a":1}`},
		{"no json at all", "lo siento, no puedo", "lo siento, no puedo"},
		{"whitespace padding", "  \n {\"a\":1} \n ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(json.RawMessage(tt.in))
			if string(got) != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
