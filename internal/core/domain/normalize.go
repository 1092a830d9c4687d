package domain

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reManyNewlines = regexp.MustCompile(`\n{3,}`)
	reManySpaces   = regexp.MustCompile(` {2,}`)
)

// NormalizeText canonicalizes extracted text for every downstream stage:
// CRLF to LF, control characters stripped, tabs to single spaces, runs of
// three or more newlines collapsed to two, runs of spaces collapsed to
// one, surrounding whitespace trimmed. Pure and idempotent.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, text)
	text = reManyNewlines.ReplaceAllString(text, "\n\n")
	text = reManySpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
