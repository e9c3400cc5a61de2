package sanitizer

import (
	"regexp"
)

var (
	// Script-like constructs that must never survive in free-text fields:
	// tags able to execute code, inline event handlers and javascript: URLs.
	reScriptMarkup = regexp.MustCompile(`(?i)<\s*/?\s*(script|iframe|object|embed|img|svg|style|link|meta)\b|\bon[a-z]+\s*=|javascript\s*:`)

	reAnyTag = regexp.MustCompile(`<[^>]*>`)
)

// ContainsMarkup reports whether the input carries executable markup.
// Validation rejects such input outright instead of silently rewriting it.
func ContainsMarkup(s string) bool {
	return reScriptMarkup.MatchString(s)
}

// StripTags removes every angle-bracket tag from the input. Used for
// fields that are displayed but never rendered as HTML.
func StripTags(s string) string {
	return TrimAndNormalize(reAnyTag.ReplaceAllString(s, " "))
}
