package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/janboddez/scrobbble-addon/internal/store"
	"github.com/rs/zerolog"
)

func newTestScheduler(t *testing.T) (*Scheduler, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return New(st, time.Minute, zerolog.Nop()), st
}

func TestScheduleAndDrain(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	type payload struct {
		Hash string `json:"hash"`
	}

	var got payload
	var calls int
	s.Register("fetch_cover_art", func(ctx context.Context, args json.RawMessage) error {
		calls++
		return json.Unmarshal(args, &got)
	})

	if err := s.Schedule(ctx, 0, "fetch_cover_art", payload{Hash: "abc"}); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	s.Drain(ctx)

	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
	if got.Hash != "abc" {
		t.Errorf("args.Hash = %q, want abc", got.Hash)
	}

	// The completed task is not offered again.
	s.Drain(ctx)
	if calls != 1 {
		t.Errorf("handler re-ran a completed task, %d calls", calls)
	}
}

func TestDrain_DelayedTaskNotDueYet(t *testing.T) {
	s, st := newTestScheduler(t)
	ctx := context.Background()

	var calls int
	s.Register("fetch_cover_art", func(ctx context.Context, args json.RawMessage) error {
		calls++
		return nil
	})

	if err := s.Schedule(ctx, time.Hour, "fetch_cover_art", nil); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	s.Drain(ctx)
	if calls != 0 {
		t.Errorf("future task ran early, %d calls", calls)
	}

	// Still queued for when its time comes.
	tasks, err := st.DueTasks(ctx, time.Now().Add(2*time.Hour), 0)
	if err != nil {
		t.Fatalf("DueTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected task still queued, got %d", len(tasks))
	}
}

func TestDrain_FailedTaskNotRetried(t *testing.T) {
	s, st := newTestScheduler(t)
	ctx := context.Background()

	var calls int
	s.Register("fetch_cover_art", func(ctx context.Context, args json.RawMessage) error {
		calls++
		return errors.New("boom")
	})

	if err := s.Schedule(ctx, 0, "fetch_cover_art", nil); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	s.Drain(ctx)
	s.Drain(ctx)

	if calls != 1 {
		t.Errorf("failed task retried, %d calls", calls)
	}

	// The failure is recorded, not lost.
	tasks, err := st.DueTasks(ctx, time.Now(), 0)
	if err != nil {
		t.Fatalf("DueTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("failed task still due: %v", tasks)
	}
}

func TestDrain_UnregisteredTaskStaysQueued(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	if err := s.Schedule(ctx, 0, "unknown_task", nil); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	s.Drain(ctx)

	// Registering later picks the task up on the next drain.
	var calls int
	s.Register("unknown_task", func(ctx context.Context, args json.RawMessage) error {
		calls++
		return nil
	})

	s.Drain(ctx)
	if calls != 1 {
		t.Errorf("late-registered handler called %d times, want 1", calls)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, _ := newTestScheduler(t)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
