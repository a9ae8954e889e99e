package speech

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	bracketTags    = regexp.MustCompile(`\[.*?\]`)
	markdownMarks  = regexp.MustCompile("[*_#`~]")
	parentheticals = regexp.MustCompile(`\(.*?\)`)
)

// Clean strips lesson tags, markdown markup, and parenthetical asides
// from tutor text before synthesis. A result shorter than 2 runes means
// there is nothing to speak and the empty string is returned.
func Clean(text string) string {
	s := bracketTags.ReplaceAllString(text, "")
	s = markdownMarks.ReplaceAllString(s, "")
	s = parentheticals.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) < 2 {
		return ""
	}
	return s
}
