package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/janboddez/scrobbble-addon/internal/artcache"
	"github.com/janboddez/scrobbble-addon/internal/enricher"
	"github.com/janboddez/scrobbble-addon/internal/listens"
	"github.com/janboddez/scrobbble-addon/internal/store"
	"github.com/rs/zerolog"
)

func newTestRenderer(t *testing.T) (*Renderer, *store.Store, *artcache.Cache, string) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	artDir := t.TempDir()
	art := artcache.New(artcache.Config{
		Dir:     artDir,
		BaseURL: "http://music.test/art",
	}, zerolog.Nop())

	return New(st, art, time.Hour, zerolog.Nop()), st, art, artDir
}

func TestCoverArt(t *testing.T) {
	r, st, _, artDir := newTestRenderer(t)
	ctx := context.Background()

	if got := r.CoverArt(ctx, 7); got != "" {
		t.Errorf("expected empty ref for unknown listen, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(artDir, "abc123.png"), []byte("img"), 0644); err != nil {
		t.Fatalf("failed to seed art file: %v", err)
	}
	ref := "http://music.test/art/abc123.png"
	if err := st.SetMeta(ctx, 7, listens.FieldCoverArt, ref); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}

	if got := r.CoverArt(ctx, 7); got != ref {
		t.Errorf("CoverArt = %q, want %q", got, ref)
	}
}

func TestCoverArt_StaleReferenceDeleted(t *testing.T) {
	r, st, _, _ := newTestRenderer(t)
	ctx := context.Background()

	// The meta points at a file that no longer exists.
	ref := "http://music.test/art/gone.png"
	if err := st.SetMeta(ctx, 7, listens.FieldCoverArt, ref); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}

	if got := r.CoverArt(ctx, 7); got != "" {
		t.Errorf("expected empty ref for stale file, got %q", got)
	}

	// The dangling reference has been cleaned up.
	if _, ok, _ := st.GetMeta(ctx, 7, listens.FieldCoverArt); ok {
		t.Error("stale cover art field still present")
	}
}

func TestCoverArtByTrack(t *testing.T) {
	r, _, _, artDir := newTestRenderer(t)
	ctx := context.Background()

	hash := enricher.ContentHash("Fleetwood Mac", "Rumours")
	if err := os.WriteFile(filepath.Join(artDir, hash+".png"), []byte("img"), 0644); err != nil {
		t.Fatalf("failed to seed art file: %v", err)
	}

	want := "http://music.test/art/" + hash + ".png"
	if got := r.CoverArtByTrack(ctx, "Fleetwood Mac", "Rumours"); got != want {
		t.Errorf("CoverArtByTrack = %q, want %q", got, want)
	}

	// The result now comes from the cache; removing the file does not
	// change the answer until the entry expires.
	if err := os.Remove(filepath.Join(artDir, hash+".png")); err != nil {
		t.Fatalf("failed to remove art file: %v", err)
	}
	if got := r.CoverArtByTrack(ctx, "Fleetwood Mac", "Rumours"); got != want {
		t.Errorf("cached lookup = %q, want %q", got, want)
	}
}

func TestCoverArtByTrack_NegativeCaching(t *testing.T) {
	r, _, _, artDir := newTestRenderer(t)
	ctx := context.Background()

	if got := r.CoverArtByTrack(ctx, "Nobody", "Nothing"); got != "" {
		t.Errorf("expected empty ref, got %q", got)
	}

	// The miss is cached: a file appearing afterwards is not picked up
	// until the negative entry expires.
	hash := enricher.ContentHash("Nobody", "Nothing")
	if err := os.WriteFile(filepath.Join(artDir, hash+".png"), []byte("img"), 0644); err != nil {
		t.Fatalf("failed to seed art file: %v", err)
	}
	if got := r.CoverArtByTrack(ctx, "Nobody", "Nothing"); got != "" {
		t.Errorf("negative cache bypassed, got %q", got)
	}
}

func TestCoverArtByTrack_ExpiredEntryReResolved(t *testing.T) {
	r, st, _, artDir := newTestRenderer(t)
	ctx := context.Background()

	hash := enricher.ContentHash("Fleetwood Mac", "Rumours")

	// Seed an already expired negative entry.
	if err := st.CacheSet(ctx, "cover:"+hash, "", -time.Minute); err != nil {
		t.Fatalf("CacheSet failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(artDir, hash+".png"), []byte("img"), 0644); err != nil {
		t.Fatalf("failed to seed art file: %v", err)
	}

	want := "http://music.test/art/" + hash + ".png"
	if got := r.CoverArtByTrack(ctx, "Fleetwood Mac", "Rumours"); got != want {
		t.Errorf("CoverArtByTrack = %q, want %q", got, want)
	}
}
