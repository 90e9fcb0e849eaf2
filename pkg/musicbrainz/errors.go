package musicbrainz

import (
	"fmt"
	"net/http"
)

// Error represents an unexpected response from the MusicBrainz API.
//
// The Error type carries the HTTP status code and the raw response body
// so that callers can log enough context to diagnose upstream failures.
type Error struct {
	StatusCode int    // HTTP status code
	Body       string // Raw response body, if any
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("musicbrainz: unexpected status %d", e.StatusCode)
}

// NotFound reports whether the error is a 404 response.
//
// A 404 from the web service means the looked-up entity does not exist,
// which enrichment callers treat as "no result" rather than a failure.
func (e *Error) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
