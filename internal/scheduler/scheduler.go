// Package scheduler runs deferred, fire-and-forget tasks from a
// persistent queue.
//
// Long-running enrichment work (cover-art fetching, mainly) is handed
// to the scheduler instead of blocking the save event that triggered
// it. Delivery is at-least-once, so task handlers must be idempotent.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/janboddez/scrobbble-addon/internal/store"
	"github.com/rs/zerolog"
)

// HandlerFunc executes a named task. Args is the JSON the task was
// scheduled with.
type HandlerFunc func(ctx context.Context, args json.RawMessage) error

// Scheduler persists scheduled tasks and runs them once due.
type Scheduler struct {
	store    *store.Store
	interval time.Duration
	logger   zerolog.Logger

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// New creates a Scheduler polling the task queue at the given interval.
func New(st *store.Store, interval time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		store:    st,
		interval: interval,
		logger:   logger.With().Str("component", "scheduler").Logger(),
		handlers: make(map[string]HandlerFunc),
	}
}

// Register binds a handler to a task name. Scheduling a task with no
// registered handler is allowed; the task stays queued until a handler
// exists.
func (s *Scheduler) Register(name string, h HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = h
}

// Schedule enqueues a task to run after delay. Args is JSON-encoded;
// there is no way to observe or cancel the task afterwards.
func (s *Scheduler) Schedule(ctx context.Context, delay time.Duration, name string, args interface{}) error {
	encoded, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode task args: %w", err)
	}

	id := uuid.NewString()
	runAt := time.Now().Add(delay)

	if err := s.store.EnqueueTask(ctx, id, name, string(encoded), runAt); err != nil {
		return err
	}

	s.logger.Debug().
		Str("task", name).
		Str("id", id).
		Time("run_at", runAt).
		Msg("Task scheduled")

	return nil
}

// Run processes due tasks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("Starting task worker")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Process immediately on start
	s.Drain(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Task worker stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Drain(ctx)
		}
	}
}

// Drain runs every currently due task once. Used by Run on each tick
// and by one-shot CLI commands that want the queue emptied before exit.
func (s *Scheduler) Drain(ctx context.Context) {
	due, err := s.store.DueTasks(ctx, time.Now(), 50)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch due tasks")
		return
	}

	for _, task := range due {
		s.runTask(ctx, task)
	}
}

func (s *Scheduler) runTask(ctx context.Context, task store.Task) {
	s.mu.RLock()
	handler, ok := s.handlers[task.Name]
	s.mu.RUnlock()

	if !ok {
		// Leave the task queued; a handler may be registered later.
		s.logger.Warn().Str("task", task.Name).Msg("No handler registered for task")
		return
	}

	if err := handler(ctx, json.RawMessage(task.Args)); err != nil {
		s.logger.Warn().
			Err(err).
			Str("task", task.Name).
			Str("id", task.ID).
			Msg("Task failed")
		if markErr := s.store.MarkTaskError(ctx, task.ID, err.Error()); markErr != nil {
			s.logger.Error().Err(markErr).Msg("Failed to record task error")
		}
		return
	}

	if err := s.store.MarkTaskDone(ctx, task.ID); err != nil {
		s.logger.Error().Err(err).Msg("Failed to mark task done")
	}
}
