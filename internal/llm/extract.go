package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers a JSON payload from model output that may be
// wrapped in a markdown code fence or surrounded by prose. Providers
// without native structured-output support need this before schema
// validation. Returns the input unchanged when no wrapping is found.
func ExtractJSON(raw json.RawMessage) json.RawMessage {
	s := strings.TrimSpace(string(raw))

	if fenced, ok := stripFence(s); ok {
		s = fenced
	} else if !looksLikeJSON(s) {
		// Fall back to the outermost brace or bracket span.
		if span, ok := braceSpan(s); ok {
			s = span
		}
	}

	return json.RawMessage(strings.TrimSpace(s))
}

func stripFence(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]
	// Skip an optional language tag on the fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		first := strings.TrimSpace(rest[:nl])
		if first == "" || first == "json" {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func looksLikeJSON(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

func braceSpan(s string) (string, bool) {
	open := strings.IndexAny(s, "{[")
	if open < 0 {
		return "", false
	}
	var close int
	if s[open] == '{' {
		close = strings.LastIndexByte(s, '}')
	} else {
		close = strings.LastIndexByte(s, ']')
	}
	if close <= open {
		return "", false
	}
	return s[open : close+1], true
}
