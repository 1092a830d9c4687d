package usecase

import "strings"

// stripMarkdownFences removes a leading ```json (or bare ```) fence and
// the matching trailing fence. The provider sometimes wraps JSON output
// this way despite instructions not to.
func stripMarkdownFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag on the fence line, e.g. "json"
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// truncate bounds text to at most limit bytes. A limit of zero means no
// bound.
func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit]
}
