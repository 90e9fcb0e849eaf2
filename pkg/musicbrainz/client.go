// Package musicbrainz provides a client for the MusicBrainz web service v2.
//
// This package implements the small slice of the MusicBrainz API needed
// for listen enrichment: recording and release text search, genre lookup,
// and release-group resolution. It is designed to be used as a standalone
// SDK.
//
// Example usage:
//
//	import "github.com/janboddez/scrobbble-addon/pkg/musicbrainz"
//
//	client, err := musicbrainz.NewClient(musicbrainz.Config{
//	    UserAgent: "my-app/1.0 (+https://example.org/)",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	recordings, err := client.SearchRecordings(ctx, "yesterday", "the beatles", "help!", 1)
package musicbrainz

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	UserAgent  string       // Required: identifying User-Agent string (MusicBrainz policy)
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: Base URL for the API (defaults to MusicBrainz, used for testing)
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for MusicBrainz API operations.
type Client struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
	logger     Logger
}

const (
	// DefaultBaseURL is the default MusicBrainz web service endpoint.
	DefaultBaseURL = "https://musicbrainz.org/ws/2"
)

// NewClient creates a new MusicBrainz API client.
//
// Returns an error if the required UserAgent is missing. MusicBrainz
// rejects anonymous clients, so an identifying User-Agent is mandatory.
func NewClient(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("musicbrainz: UserAgent is required")
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
		logger:     cfg.Logger,
	}, nil
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
