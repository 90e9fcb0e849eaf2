package enricher

import (
	"testing"
)

func TestContentHash_Deterministic(t *testing.T) {
	a := ContentHash("Queen", "A Night at the Opera")
	b := ContentHash("Queen", "A Night at the Opera")
	if a != b {
		t.Errorf("same inputs produced different hashes: %q vs %q", a, b)
	}
}

func TestContentHash_DistinctPairs(t *testing.T) {
	pairs := [][2]string{
		{"Queen", "A Night at the Opera"},
		{"Queen", "News of the World"},
		{"David Bowie", "Low"},
		{"Low", "David Bowie"}, // swapped fields must not collide either
		{"Various Artists", "Now That's What I Call Music!"},
	}

	seen := make(map[string][2]string)
	for _, p := range pairs {
		h := ContentHash(p[0], p[1])
		if prev, ok := seen[h]; ok {
			t.Errorf("hash collision between %v and %v", prev, p)
		}
		seen[h] = p
	}
}

func TestContentHash_CaseSensitive(t *testing.T) {
	if ContentHash("queen", "low") == ContentHash("Queen", "Low") {
		t.Error("expected case-sensitive hashing")
	}
}

func TestContentHash_FilenameSafe(t *testing.T) {
	h := ContentHash("AC/DC", "Back in Black … & More?")
	if len(h) != 64 {
		t.Errorf("expected 64-char digest, got %d", len(h))
	}
	for _, r := range h {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			t.Errorf("unexpected character %q in hash", r)
		}
	}
}
