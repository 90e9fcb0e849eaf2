// Package enricher implements the listen-enrichment pipeline: resolving
// noisy track data against MusicBrainz, tagging listens with genres and
// fetching cover art into the local cache.
//
// Everything in this package is best-effort. Lookups that find nothing
// are an expected outcome, and upstream failures are logged and treated
// the same way; nothing here ever fails the save event that triggered
// it.
package enricher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/janboddez/scrobbble-addon/internal/artcache"
	"github.com/janboddez/scrobbble-addon/internal/scheduler"
	"github.com/janboddez/scrobbble-addon/internal/store"
	"github.com/janboddez/scrobbble-addon/pkg/coverart"
	"github.com/janboddez/scrobbble-addon/pkg/musicbrainz"
	"github.com/rs/zerolog"
)

// TaskFetchCoverArt is the scheduler task name for deferred cover-art
// fetching.
const TaskFetchCoverArt = "fetch_cover_art"

// coverArtArgs is the payload a deferred cover-art task is scheduled
// with.
type coverArtArgs struct {
	AlbumMBID string `json:"album_mbid"`
	Hash      string `json:"hash"`
	ListenID  int64  `json:"listen_id,omitempty"`
}

// Enricher coordinates the metadata-resolution and cover-art pipeline.
type Enricher struct {
	mb     *musicbrainz.Client
	caa    *coverart.Client
	store  *store.Store
	sched  *scheduler.Scheduler
	art    *artcache.Cache
	logger zerolog.Logger
}

// New wires up an Enricher from its collaborators.
func New(
	mb *musicbrainz.Client,
	caa *coverart.Client,
	st *store.Store,
	sched *scheduler.Scheduler,
	art *artcache.Cache,
	logger zerolog.Logger,
) *Enricher {
	return &Enricher{
		mb:     mb,
		caa:    caa,
		store:  st,
		sched:  sched,
		art:    art,
		logger: logger.With().Str("component", "enricher").Logger(),
	}
}

// RegisterTasks binds the enricher's deferred task handlers to the
// scheduler.
func (e *Enricher) RegisterTasks() {
	e.sched.Register(TaskFetchCoverArt, func(ctx context.Context, raw json.RawMessage) error {
		var args coverArtArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return fmt.Errorf("invalid cover art task args: %w", err)
		}
		e.FetchCoverArt(ctx, args.AlbumMBID, args.Hash, args.ListenID)
		return nil
	})
}

// scheduleCoverArt hands cover-art fetching to the task queue so the
// save event is not held up by slow network and image work.
func (e *Enricher) scheduleCoverArt(ctx context.Context, albumMBID, hash string, listenID int64) {
	err := e.sched.Schedule(ctx, 0, TaskFetchCoverArt, coverArtArgs{
		AlbumMBID: albumMBID,
		Hash:      hash,
		ListenID:  listenID,
	})
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to schedule cover art fetch")
	}
}
