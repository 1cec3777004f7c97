// Package normalize prepares detail text for display and for debounce keys.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxDetailRunes caps free-text fields such as chat messages.
const MaxDetailRunes = 120

var tagPattern = regexp.MustCompile(`<[^<>]*>`)

// StripTags removes inline markup such as <col=ff9040> and <img=2>.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	return tagPattern.ReplaceAllString(s, "")
}

// Key returns the canonical form of detail used for deduplication:
// markup stripped, NFC-composed and trimmed. Cosmetic differences between
// two otherwise identical details map to the same key.
func Key(detail string) string {
	return strings.TrimSpace(norm.NFC.String(StripTags(detail)))
}

// Truncate shortens s to at most maxRunes runes, appending "..." when cut.
// Never splits a multi-byte character.
func Truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	i, n := 0, 0
	for i < len(s) && n < maxRunes {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n++
	}
	return s[:i] + "..."
}
