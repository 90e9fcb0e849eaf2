package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/janboddez/scrobbble-addon/internal/artcache"
	"github.com/janboddez/scrobbble-addon/internal/config"
	"github.com/janboddez/scrobbble-addon/internal/daemon"
	"github.com/janboddez/scrobbble-addon/internal/enricher"
	"github.com/janboddez/scrobbble-addon/internal/events"
	"github.com/janboddez/scrobbble-addon/internal/render"
	"github.com/janboddez/scrobbble-addon/internal/scheduler"
	"github.com/janboddez/scrobbble-addon/internal/store"
	"github.com/janboddez/scrobbble-addon/pkg/coverart"
	"github.com/janboddez/scrobbble-addon/pkg/musicbrainz"
	"github.com/rs/zerolog"
)

// components holds everything a command may need, fully wired.
type components struct {
	store    *store.Store
	daemon   *daemon.Daemon
	bus      *events.Bus
	sched    *scheduler.Scheduler
	renderer *render.Renderer
}

// buildComponents assembles the full pipeline from configuration.
func buildComponents(cfg *config.Config, logger zerolog.Logger) (*components, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.New(filepath.Join(cfg.DataDir, "listens.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	userAgent := cfg.MusicBrainz.UserAgent()

	mb, err := musicbrainz.NewClient(musicbrainz.Config{
		UserAgent:  userAgent,
		HTTPClient: httpClient,
		BaseURL:    cfg.MusicBrainz.BaseURL,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create MusicBrainz client: %w", err)
	}

	caa, err := coverart.NewClient(coverart.Config{
		UserAgent:  userAgent,
		HTTPClient: httpClient,
		BaseURL:    cfg.MusicBrainz.CoverArtBaseURL,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create Cover Art Archive client: %w", err)
	}

	art := artcache.New(artcache.Config{
		Dir:         cfg.Art.Dir,
		BaseURL:     cfg.Art.BaseURL,
		UserAgent:   userAgent,
		ThumbWidth:  cfg.Art.ThumbWidth,
		ThumbHeight: cfg.Art.ThumbHeight,
		HTTPClient:  httpClient,
	}, logger)

	sched := scheduler.New(st, cfg.TaskInterval, logger)
	enr := enricher.New(mb, caa, st, sched, art, logger)
	bus := events.NewBus()
	d := daemon.New(bus, enr, sched, st, logger)
	renderer := render.New(st, art, cfg.CoverCacheTTL, logger)

	return &components{
		store:    st,
		daemon:   d,
		bus:      bus,
		sched:    sched,
		renderer: renderer,
	}, nil
}
