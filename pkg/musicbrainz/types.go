package musicbrainz

// Recording represents a MusicBrainz recording (a specific performance
// of a track).
type Recording struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Length       int            `json:"length,omitempty"` // milliseconds
	ArtistCredit []ArtistCredit `json:"artist-credit,omitempty"`
	Genres       []Genre        `json:"genres,omitempty"`
	Score        int            `json:"score,omitempty"`
}

// Release represents a MusicBrainz release (a specific edition of an
// album).
type Release struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date,omitempty"`
	Country      string         `json:"country,omitempty"`
	Status       string         `json:"status,omitempty"`
	ArtistCredit []ArtistCredit `json:"artist-credit,omitempty"`
	ReleaseGroup *ReleaseGroup  `json:"release-group,omitempty"`
	Score        int            `json:"score,omitempty"`
}

// ReleaseGroup represents the abstract album grouping all editions of a
// release.
type ReleaseGroup struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	PrimaryType string `json:"primary-type,omitempty"`
}

// ArtistCredit represents a single credited artist on a recording or
// release.
type ArtistCredit struct {
	Name   string `json:"name"`
	Artist Artist `json:"artist,omitempty"`
}

// Artist represents a MusicBrainz artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Genre represents a genre tag attached to a recording.
type Genre struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

// recordingSearchResponse is the envelope of a recording search.
type recordingSearchResponse struct {
	Count      int         `json:"count"`
	Offset     int         `json:"offset"`
	Recordings []Recording `json:"recordings"`
}

// releaseSearchResponse is the envelope of a release search.
type releaseSearchResponse struct {
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Releases []Release `json:"releases"`
}
