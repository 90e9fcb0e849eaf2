// Package listens holds the shared data model for scrobbled listens.
package listens

// Track describes a single played track as reported by a scrobbler.
// The strings are free text and frequently messy; MBID is only set when
// the scrobbler happened to know it.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	MBID   string `json:"mbid,omitempty"` // MusicBrainz recording ID, if known
}

// Metadata field names attached to a listen.
const (
	FieldTrackMBID = "track_mbid"
	FieldAlbumMBID = "album_mbid"
	FieldCoverArt  = "cover_art"
)

// TagGenre is the tag classification used for genre tags.
const TagGenre = "genre"
