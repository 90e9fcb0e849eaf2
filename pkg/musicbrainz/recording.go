package musicbrainz

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchRecordings performs a text search for recordings.
//
// The query combines the lower-cased title, album and artist into a
// fielded search. Free-text scrobble data is noisy, so callers are
// expected to validate any returned candidate before trusting it.
//
// Example:
//
//	recordings, err := client.SearchRecordings(ctx, "Yesterday", "The Beatles", "Help!", 1)
//	if err != nil {
//	    log.Printf("search failed: %v", err)
//	}
func (c *Client) SearchRecordings(ctx context.Context, title, artist, album string, limit int) ([]Recording, error) {
	query := fmt.Sprintf("work:%s release:%s artist:%s",
		strings.ToLower(title),
		strings.ToLower(album),
		strings.ToLower(artist),
	)

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fmt", "json")

	var resp recordingSearchResponse
	if err := c.get(ctx, "/recording", params, &resp); err != nil {
		return nil, fmt.Errorf("recording search failed: %w", err)
	}

	return resp.Recordings, nil
}

// GetRecording looks up a single recording by its MBID, including its
// genre tags.
//
// Note that genres can be quite generic; some recordings carry more
// accurate genre information in their free-form tags, which this
// client does not fetch.
func (c *Client) GetRecording(ctx context.Context, mbid string) (*Recording, error) {
	if mbid == "" {
		return nil, fmt.Errorf("musicbrainz: recording MBID is required")
	}

	params := url.Values{}
	params.Set("fmt", "json")
	params.Set("inc", "genres")

	var rec Recording
	if err := c.get(ctx, "/recording/"+url.PathEscape(mbid), params, &rec); err != nil {
		return nil, fmt.Errorf("recording lookup failed: %w", err)
	}

	return &rec, nil
}
