package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/janboddez/scrobbble-addon/internal/enricher"
	"github.com/janboddez/scrobbble-addon/internal/events"
	"github.com/janboddez/scrobbble-addon/internal/scheduler"
	"github.com/janboddez/scrobbble-addon/internal/store"
	"github.com/rs/zerolog"
)

// taskRetention is how long completed deferred tasks are kept before
// cleanup.
const taskRetention = 7 * 24 * time.Hour

// Daemon ties the event bus, the enrichment pipeline and the deferred
// task worker together and runs until told to stop.
type Daemon struct {
	bus    *events.Bus
	enr    *enricher.Enricher
	sched  *scheduler.Scheduler
	store  *store.Store
	logger zerolog.Logger
}

// New assembles a Daemon: the enricher's two listen handlers are
// subscribed on the bus and its deferred tasks registered with the
// scheduler.
func New(bus *events.Bus, enr *enricher.Enricher, sched *scheduler.Scheduler, st *store.Store, logger zerolog.Logger) *Daemon {
	// Genre tagging and release resolution are independent reactions
	// to the same save event; neither sees the other's output.
	bus.SubscribeListenSaved(func(ctx context.Context, ev events.ListenSaved) {
		enr.TagGenres(ctx, ev.ListenID, ev.Track)
	})
	bus.SubscribeListenSaved(func(ctx context.Context, ev events.ListenSaved) {
		enr.AddReleaseMeta(ctx, ev.ListenID, ev.Track)
	})

	enr.RegisterTasks()

	return &Daemon{
		bus:    bus,
		enr:    enr,
		sched:  sched,
		store:  st,
		logger: logger.With().Str("component", "daemon").Logger(),
	}
}

// Bus exposes the event bus the host publishes listen events on.
func (d *Daemon) Bus() *events.Bus {
	return d.bus
}

// Run starts the task worker and blocks until a shutdown signal is
// received.
func (d *Daemon) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Handle first signal gracefully, second signal forces exit
	go func() {
		<-sigChan
		d.logger.Info().Msg("Shutdown signal received, initiating graceful shutdown")
		cancel()

		<-sigChan
		d.logger.Warn().Msg("Second shutdown signal received, forcing exit")
		os.Exit(1)
	}()

	d.logger.Info().Msg("Starting daemon")

	if err := d.sched.Run(ctx); err != nil && err != context.Canceled {
		return err
	}

	d.logger.Info().Msg("Daemon stopped")
	return nil
}

// Shutdown cleans up old completed tasks and closes the store.
func (d *Daemon) Shutdown() error {
	d.logger.Info().Msg("Shutting down daemon")

	ctx := context.Background()

	if _, err := d.store.CleanupTasks(ctx, taskRetention); err != nil {
		d.logger.Warn().Err(err).Msg("Failed to cleanup tasks")
	}

	return d.store.Close()
}
