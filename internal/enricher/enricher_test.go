package enricher

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/janboddez/scrobbble-addon/internal/artcache"
	"github.com/janboddez/scrobbble-addon/internal/scheduler"
	"github.com/janboddez/scrobbble-addon/internal/store"
	"github.com/janboddez/scrobbble-addon/pkg/coverart"
	"github.com/janboddez/scrobbble-addon/pkg/musicbrainz"
	"github.com/rs/zerolog"
)

// testEnv wires an Enricher against httptest-backed service endpoints
// and a throwaway store and art directory.
type testEnv struct {
	enr    *Enricher
	store  *store.Store
	sched  *scheduler.Scheduler
	art    *artcache.Cache
	artDir string
}

func newTestEnv(t *testing.T, mbURL, caaURL string) *testEnv {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "listens.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := zerolog.Nop()

	mb, err := musicbrainz.NewClient(musicbrainz.Config{
		UserAgent: "test/1.0",
		BaseURL:   mbURL,
	})
	if err != nil {
		t.Fatalf("failed to create musicbrainz client: %v", err)
	}

	caa, err := coverart.NewClient(coverart.Config{
		UserAgent: "test/1.0",
		BaseURL:   caaURL,
	})
	if err != nil {
		t.Fatalf("failed to create coverart client: %v", err)
	}

	artDir := t.TempDir()
	art := artcache.New(artcache.Config{
		Dir:       artDir,
		BaseURL:   "http://music.test/art",
		UserAgent: "test/1.0",
	}, logger)

	sched := scheduler.New(st, time.Minute, logger)

	enr := New(mb, caa, st, sched, art, logger)
	enr.RegisterTasks()

	return &testEnv{
		enr:    enr,
		store:  st,
		sched:  sched,
		art:    art,
		artDir: artDir,
	}
}

// pngBytes returns an encoded PNG of the given dimensions.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}
