// Package artcache stores downloaded cover images on disk, keyed by
// content hash, and hands out stable public references to them.
package artcache

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Cache manages the local cover-art directory.
//
// Files are named <hash>.<ext>. Presence of any file for a hash means
// the art has been resolved before; StoreImage and FindByHash both rely
// on that to avoid repeating network work.
type Cache struct {
	dir         string
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	thumbWidth  int
	thumbHeight int
	logger      zerolog.Logger
}

// Config holds cache configuration.
type Config struct {
	Dir         string       // Art directory on disk
	BaseURL     string       // Public URL prefix corresponding to Dir
	UserAgent   string       // User-Agent for image downloads
	ThumbWidth  int          // Thumbnail width (default 150)
	ThumbHeight int          // Thumbnail height (default 150)
	HTTPClient  *http.Client // Optional; defaults to a 30s-timeout client
}

// New creates a Cache for the given directory.
func New(cfg Config, logger zerolog.Logger) *Cache {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	thumbWidth := cfg.ThumbWidth
	if thumbWidth <= 0 {
		thumbWidth = 150
	}
	thumbHeight := cfg.ThumbHeight
	if thumbHeight <= 0 {
		thumbHeight = 150
	}

	return &Cache{
		dir:         cfg.Dir,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:  httpClient,
		userAgent:   cfg.UserAgent,
		thumbWidth:  thumbWidth,
		thumbHeight: thumbHeight,
		logger:      logger.With().Str("component", "artcache").Logger(),
	}
}

// FindByHash returns the path of the first stored file whose name
// starts with hash, or "" if none exists.
func (c *Cache) FindByHash(hash string) string {
	if hash == "" {
		return ""
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		// Directory may simply not exist yet.
		return ""
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), hash) {
			return filepath.Join(c.dir, entry.Name())
		}
	}

	return ""
}

// Ref translates a path inside the art directory into its public
// reference. Paths outside the directory are returned unchanged.
func (c *Cache) Ref(path string) string {
	if c.baseURL == "" {
		return path
	}

	rel, err := filepath.Rel(c.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return c.baseURL + "/" + filepath.ToSlash(rel)
}

// Path translates a public reference back into the on-disk path of the
// stored file. References outside the cache's base URL are returned
// unchanged.
func (c *Cache) Path(ref string) string {
	if c.baseURL == "" || !strings.HasPrefix(ref, c.baseURL+"/") {
		return ref
	}

	rel := strings.TrimPrefix(ref, c.baseURL+"/")
	return filepath.Join(c.dir, filepath.FromSlash(rel))
}

// StoreImage downloads url, validates it as a displayable image, crops
// it to the configured thumbnail size and stores it in the art
// directory under filename. Returns the public reference of the stored
// file, or "" if anything prevented storing one.
//
// Every failure mode is contained here: errors are logged and turn into
// an empty result, never an error for the caller. If a file already
// exists under filename, its reference is returned without any network
// access.
func (c *Cache) StoreImage(ctx context.Context, url, filename string) string {
	filename = sanitizeFilename(filename)
	if filename == "" {
		c.logger.Warn().Str("url", url).Msg("Empty filename after sanitizing")
		return ""
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		c.logger.Error().Err(err).Str("dir", c.dir).Msg("Could not create art directory")
		return ""
	}

	path := filepath.Join(c.dir, filename)

	// Primary caching fast-path: never re-download an image we have.
	if _, err := os.Stat(path); err == nil {
		c.logger.Debug().Str("path", path).Msg("Image already exists")
		return c.Ref(path)
	}

	body := c.download(ctx, url)
	if len(body) == 0 {
		return ""
	}

	if err := os.WriteFile(path, body, 0644); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Could not save image file")
		return ""
	}

	img, format, err := decodeImage(body)
	if err != nil {
		// Not a displayable image; never leave the bad file behind.
		if rmErr := os.Remove(path); rmErr != nil {
			c.logger.Error().Err(rmErr).Str("path", path).Msg("Could not delete invalid image file")
		}
		c.logger.Warn().Err(err).Str("url", url).Msg("Downloaded file is not a valid image")
		return ""
	}

	finalPath, err := c.saveThumbnail(img, format, path)
	if err != nil {
		// The unresized original is still a valid image; keep it.
		c.logger.Warn().Err(err).Str("path", path).Msg("Could not resize image")
		return c.Ref(path)
	}

	if finalPath != path {
		// Saving normalized the extension; drop the file written under
		// the old name.
		if err := os.Remove(path); err != nil {
			c.logger.Error().Err(err).Str("path", path).Msg("Could not delete pre-normalization image file")
		}
	}

	return c.Ref(finalPath)
}

// download fetches url and returns its body, or nil on any failure.
func (c *Cache) download(ctx context.Context, url string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("Could not create download request")
		return nil
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("Image download failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("Image download failed")
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("Could not read image body")
		return nil
	}

	if len(body) == 0 {
		c.logger.Warn().Str("url", url).Msg("Empty image body")
		return nil
	}

	return body
}

// sanitizeFilename strips path separators and characters unsafe for a
// filename. The hash-derived names used by the pipeline pass through
// unchanged.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), ".")
}
