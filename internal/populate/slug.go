package populate

import (
	"strings"
	"unicode"
)

// Slugify derives the slug for reference entities (developers,
// publishers, categories, platforms): lowercase, punctuation dropped,
// separator runs collapsed to a single hyphen.
// "Baldur's Gate 3" -> "baldurs-gate-3".
func Slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))

	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteRune('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingSep = true
		default:
			// apostrophes and other punctuation vanish without
			// leaving a separator behind
		}
	}
	return b.String()
}

// GameSlug fixes up a slug the storefront already provides: the source
// uses underscores as separators, our URLs use hyphens. Everything else
// is kept verbatim.
func GameSlug(s string) string {
	return strings.ReplaceAll(s, "_", "-")
}
