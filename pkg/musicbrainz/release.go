package musicbrainz

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchReleases performs a text search for releases matching an album
// title.
//
// The query is deliberately not scoped to an artist: artist-credit
// schemes vary wildly for compilations, so callers filter the returned
// candidates by artist themselves.
func (c *Client) SearchReleases(ctx context.Context, album string, limit int) ([]Release, error) {
	params := url.Values{}
	params.Set("query", "release:"+strings.ToLower(album))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fmt", "json")

	var resp releaseSearchResponse
	if err := c.get(ctx, "/release", params, &resp); err != nil {
		return nil, fmt.Errorf("release search failed: %w", err)
	}

	return resp.Releases, nil
}

// GetReleaseGroup looks up the parent release group of a release.
//
// Returns the release group, or an error if the release is unknown or
// carries no group. Cover art is often attached to the group rather
// than to an individual release.
func (c *Client) GetReleaseGroup(ctx context.Context, releaseMBID string) (*ReleaseGroup, error) {
	if releaseMBID == "" {
		return nil, fmt.Errorf("musicbrainz: release MBID is required")
	}

	params := url.Values{}
	params.Set("fmt", "json")
	params.Set("inc", "release-groups")

	var rel Release
	if err := c.get(ctx, "/release/"+url.PathEscape(releaseMBID), params, &rel); err != nil {
		return nil, fmt.Errorf("release lookup failed: %w", err)
	}

	if rel.ReleaseGroup == nil || rel.ReleaseGroup.ID == "" {
		return nil, fmt.Errorf("musicbrainz: release %s has no release group", releaseMBID)
	}

	return rel.ReleaseGroup, nil
}
