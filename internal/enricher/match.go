package enricher

import "strings"

// strictEqual compares two names after stripping everything that is not
// a letter or digit and lower-casing.
//
// This defends against punctuation and quote-style differences ("Don't
// Stop" vs "Dont Stop") without admitting loose textual similarity. It
// knowingly rejects legitimate matches that differ by a featuring
// credit or parenthesized subtitle; a missed match is preferred over a
// false one.
func strictEqual(a, b string) bool {
	return stripNonAlnum(a) == stripNonAlnum(b)
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// sanitizeTag normalizes a genre name for use as a tag: lower-cased,
// control characters removed, whitespace collapsed.
func sanitizeTag(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		if r < ' ' || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
