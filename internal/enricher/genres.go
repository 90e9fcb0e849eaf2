package enricher

import (
	"context"

	"github.com/janboddez/scrobbble-addon/internal/listens"
)

// TagGenres fetches genre tags for a track's recording and attaches
// them to the listen, replacing any prior genre tags.
//
// A recording MBID is resolved first if the track does not carry one; a
// newly discovered MBID is also persisted onto the listen. Without a
// resolvable recording this is a silent no-op.
func (e *Enricher) TagGenres(ctx context.Context, listenID int64, track listens.Track) {
	if listenID == 0 {
		// Genre tags only live on a listen; without one there is
		// nothing to attach them to.
		return
	}

	mbid := e.ResolveRecording(ctx, track)
	if mbid == "" {
		return
	}

	if track.MBID == "" {
		// The MBID was just discovered; remember it for future
		// reference.
		if err := e.store.SetMeta(ctx, listenID, listens.FieldTrackMBID, mbid); err != nil {
			e.logger.Error().Err(err).Int64("listen_id", listenID).Msg("Failed to persist track MBID")
		}
	}

	e.logger.Info().
		Str("mbid", mbid).
		Msg("Getting genre information from MusicBrainz")

	rec, err := e.mb.GetRecording(ctx, mbid)
	if err != nil {
		e.logger.Warn().Err(err).Str("mbid", mbid).Msg("Genre lookup failed")
		return
	}

	if len(rec.Genres) == 0 {
		return
	}

	seen := make(map[string]bool)
	var genres []string
	for _, g := range rec.Genres {
		name := sanitizeTag(g.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		genres = append(genres, name)
	}

	if len(genres) == 0 {
		return
	}

	e.logger.Info().
		Int("count", len(genres)).
		Int64("listen_id", listenID).
		Msg("Adding genres")

	if err := e.store.SetTags(ctx, listenID, listens.TagGenre, genres); err != nil {
		e.logger.Error().Err(err).Int64("listen_id", listenID).Msg("Failed to set genre tags")
	}
}
