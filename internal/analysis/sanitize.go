package analysis

import (
	"strings"
	"unicode"
)

// StripFences removes a single markdown code fence wrapping the payload.
// Models routinely return ```json ... ``` around otherwise valid JSON. Only
// one leading and one trailing fence is removed, so fence markers inside the
// payload are left alone.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(s[3:], "```")
	if i := strings.IndexByte(body, '\n'); i >= 0 && isFenceTag(strings.TrimSpace(body[:i])) {
		body = body[i+1:]
	}
	return strings.TrimSpace(body)
}

// isFenceTag reports whether the first fence line is a language tag
// (```json) rather than payload content.
func isFenceTag(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
