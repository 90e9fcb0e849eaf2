package enricher

import (
	"crypto/sha256"
	"encoding/hex"
)

// VariousArtists is the fixed artist label MusicBrainz credits
// compilation releases to. Hashing compilations under this label lets
// differing per-track artists share one cover file.
const VariousArtists = "Various Artists"

// ContentHash derives the identifier used as both cache key and cover
// filename stem for an (artist, album) pair.
//
// The concatenation is case-sensitive and unnormalized on purpose:
// listens for the same album spell artist and album identically, and
// the hex digest is safe for filenames as-is.
func ContentHash(artist, album string) string {
	sum := sha256.Sum256([]byte(artist + album))
	return hex.EncodeToString(sum[:])
}
