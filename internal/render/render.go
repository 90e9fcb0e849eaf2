// Package render implements the synchronous read path for cover art:
// locating a previously acquired image for a listen without re-running
// resolution.
package render

import (
	"context"
	"os"
	"time"

	"github.com/janboddez/scrobbble-addon/internal/artcache"
	"github.com/janboddez/scrobbble-addon/internal/enricher"
	"github.com/janboddez/scrobbble-addon/internal/listens"
	"github.com/janboddez/scrobbble-addon/internal/store"
	"github.com/rs/zerolog"
)

// DefaultCacheTTL bounds how long a hash-to-reference lookup (including
// the negative "no art" marker) stays cached before being re-resolved.
const DefaultCacheTTL = 30 * 24 * time.Hour

const cacheKeyPrefix = "cover:"

// Renderer resolves cover-art references for display. A missing cover
// is rendered as nothing, never as an error.
type Renderer struct {
	store    *store.Store
	art      *artcache.Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// New creates a Renderer. A non-positive cacheTTL falls back to
// DefaultCacheTTL.
func New(st *store.Store, art *artcache.Cache, cacheTTL time.Duration, logger zerolog.Logger) *Renderer {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	return &Renderer{
		store:    st,
		art:      art,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "render").Logger(),
	}
}

// CoverArt returns the public cover reference stored on a listen, or ""
// when the listen has none. A reference whose underlying file has
// disappeared is treated as absent and removed from the listen.
func (r *Renderer) CoverArt(ctx context.Context, listenID int64) string {
	ref, ok, err := r.store.GetMeta(ctx, listenID, listens.FieldCoverArt)
	if err != nil {
		r.logger.Warn().Err(err).Int64("listen_id", listenID).Msg("Failed to read cover art field")
		return ""
	}
	if !ok || ref == "" {
		return ""
	}

	if _, err := os.Stat(r.art.Path(ref)); err != nil {
		// Stale reference; the file is gone.
		if delErr := r.store.DeleteMeta(ctx, listenID, listens.FieldCoverArt); delErr != nil {
			r.logger.Warn().Err(delErr).Int64("listen_id", listenID).Msg("Failed to delete stale cover art field")
		}
		return ""
	}

	return ref
}

// CoverArtByTrack locates a cached cover for an (artist, album) pair by
// content hash, consulting the TTL cache before listing the art
// directory. Both a found reference and the negative outcome are
// cached, so repeated lookups for artless albums stay cheap.
func (r *Renderer) CoverArtByTrack(ctx context.Context, artist, album string) string {
	hash := enricher.ContentHash(artist, album)
	key := cacheKeyPrefix + hash

	if value, ok, err := r.store.CacheGet(ctx, key); err == nil && ok {
		return value
	} else if err != nil {
		r.logger.Warn().Err(err).Msg("Cover cache lookup failed")
	}

	var ref string
	if path := r.art.FindByHash(hash); path != "" {
		ref = r.art.Ref(path)
	}

	if err := r.store.CacheSet(ctx, key, ref, r.cacheTTL); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to cache cover reference")
	}

	return ref
}
