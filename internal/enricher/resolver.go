package enricher

import (
	"context"
	"strings"

	"github.com/janboddez/scrobbble-addon/internal/listens"
)

// releaseSearchLimit bounds the candidate set fetched per release
// search.
const releaseSearchLimit = 10

// ResolveRecording finds the MusicBrainz recording ID for a track.
//
// If the track already carries an MBID, that is returned as-is. The
// search result is accepted only when both the recording title and the
// primary artist-credit name strictly match the track; otherwise, and
// on any service failure, the empty string is returned. Not every
// track exists in the catalog verbatim, so "unresolved" is a normal
// outcome, not an error.
func (e *Enricher) ResolveRecording(ctx context.Context, track listens.Track) string {
	if track.MBID != "" {
		return track.MBID
	}

	e.logger.Info().
		Str("title", track.Title).
		Str("artist", track.Artist).
		Msg("Missing track MBID, searching for one")

	recordings, err := e.mb.SearchRecordings(ctx, track.Title, track.Artist, track.Album, 1)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Recording search failed")
		return ""
	}

	if len(recordings) == 0 {
		e.logger.Info().Msg("Could not find a recording MBID")
		return ""
	}

	rec := recordings[0]
	if rec.ID == "" || rec.Title == "" || len(rec.ArtistCredit) == 0 || rec.ArtistCredit[0].Name == "" {
		e.logger.Info().Msg("Could not find a recording MBID")
		return ""
	}

	// Accept near-exact matches only: curly quotes and other
	// punctuation may differ, but the words must not.
	if !strictEqual(rec.Title, track.Title) || !strictEqual(rec.ArtistCredit[0].Name, track.Artist) {
		e.logger.Info().
			Str("candidate_title", rec.Title).
			Str("candidate_artist", rec.ArtistCredit[0].Name).
			Msg("Search result does not match track, rejecting")
		return ""
	}

	return rec.ID
}

// ResolveRelease finds the MusicBrainz release for a track's album.
//
// The search is scoped to the album title alone; candidates are then
// filtered by artist. The first candidate credited to the track's own
// artist wins. Failing that, the first candidate credited to "Various
// Artists" is treated as a compilation match; compilations share art
// across per-track artists, so the returned hash artist is then the
// fixed compilation label rather than the track's artist.
//
// Returns the release MBID and the artist name to hash the cover under,
// or empty strings when unresolved.
func (e *Enricher) ResolveRelease(ctx context.Context, track listens.Track) (releaseMBID, hashArtist string) {
	releases, err := e.mb.SearchReleases(ctx, track.Album, releaseSearchLimit)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Release search failed")
		return "", ""
	}

	for _, rel := range releases {
		if rel.ID == "" || len(rel.ArtistCredit) == 0 {
			continue
		}
		if strings.EqualFold(rel.ArtistCredit[0].Name, track.Artist) {
			return rel.ID, track.Artist
		}
	}

	// No release under the track's own artist; compilations are a
	// recognized second chance.
	for _, rel := range releases {
		if rel.ID == "" || len(rel.ArtistCredit) == 0 {
			continue
		}
		if strings.EqualFold(rel.ArtistCredit[0].Name, VariousArtists) {
			return rel.ID, VariousArtists
		}
	}

	e.logger.Info().
		Str("album", track.Album).
		Str("artist", track.Artist).
		Msg("Could not find a matching release")

	return "", ""
}
