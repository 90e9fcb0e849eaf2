package enricher

import (
	"context"

	"github.com/janboddez/scrobbble-addon/internal/listens"
)

// AddReleaseMeta resolves the release (album) behind a listen, persists
// its MBID and schedules the deferred cover-art fetch.
//
// The cover's content hash is computed after resolution so that a
// compilation match hashes under "Various Artists" instead of the
// track's own artist. Running with listenID zero skips the meta write
// and only warms the shared art cache.
func (e *Enricher) AddReleaseMeta(ctx context.Context, listenID int64, track listens.Track) {
	e.logger.Info().
		Str("album", track.Album).
		Int64("listen_id", listenID).
		Msg("Getting album data")

	releaseMBID, hashArtist := e.ResolveRelease(ctx, track)
	if releaseMBID == "" {
		return
	}

	if listenID != 0 {
		if err := e.store.SetMeta(ctx, listenID, listens.FieldAlbumMBID, releaseMBID); err != nil {
			e.logger.Error().Err(err).Int64("listen_id", listenID).Msg("Failed to persist album MBID")
			// The cover fetch can still proceed; the meta write is
			// independent of the art cache.
		}
	}

	hash := ContentHash(hashArtist, track.Album)
	e.scheduleCoverArt(ctx, releaseMBID, hash, listenID)
}
