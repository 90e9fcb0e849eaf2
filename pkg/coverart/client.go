// Package coverart provides a client for the Cover Art Archive.
//
// The Cover Art Archive (https://coverartarchive.org) hosts artwork for
// MusicBrainz releases and release groups. This package fetches the
// image index for either entity; actual image downloads are left to the
// caller.
//
// Example usage:
//
//	client, err := coverart.NewClient(coverart.Config{
//	    UserAgent: "my-app/1.0 (+https://example.org/)",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	images, err := client.ReleaseImages(ctx, releaseMBID)
//	if errors.Is(err, coverart.ErrNotFound) {
//	    // This release simply has no art.
//	}
package coverart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotFound is returned when the archive has no artwork for the
// requested entity. Callers should treat this as an expected outcome,
// not a failure.
var ErrNotFound = errors.New("coverart: no artwork found")

// Config holds client configuration.
type Config struct {
	UserAgent  string       // Required: identifying User-Agent string
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: Base URL (defaults to the Cover Art Archive, used for testing)
}

// Client queries the Cover Art Archive.
type Client struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
}

const (
	// DefaultBaseURL is the default Cover Art Archive endpoint.
	DefaultBaseURL = "https://coverartarchive.org"
)

// NewClient creates a new Cover Art Archive client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("coverart: UserAgent is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		baseURL:    baseURL,
	}, nil
}

// ReleaseImages fetches the image index for a release.
//
// Returns ErrNotFound if the archive holds no artwork for the release.
func (c *Client) ReleaseImages(ctx context.Context, releaseMBID string) ([]Image, error) {
	return c.images(ctx, "/release/"+releaseMBID)
}

// ReleaseGroupImages fetches the image index for a release group.
//
// Returns ErrNotFound if the archive holds no artwork for the group.
func (c *Client) ReleaseGroupImages(ctx context.Context, groupMBID string) ([]Image, error) {
	return c.images(ctx, "/release-group/"+groupMBID)
}

func (c *Client) images(ctx context.Context, path string) ([]Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coverart: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var index imageIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return index.Images, nil
}
