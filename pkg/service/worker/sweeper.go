package worker

import (
	"context"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// ScheduledRunner evaluates a single due run against current project state
type ScheduledRunner interface {
	RunScheduled(ctx context.Context, run *model.ScheduledRun) error
}

// Sweeper drains due scheduled runs on a fixed interval.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type Sweeper struct {
	repo        interfaces.Repository
	runner      ScheduledRunner
	interval    time.Duration
	concurrency int
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// NewSweeper creates a worker that fires due scheduled runs
func NewSweeper(repo interfaces.Repository, runner ScheduledRunner, interval time.Duration) *Sweeper {
	return &Sweeper{
		repo:        repo,
		runner:      runner,
		interval:    interval,
		concurrency: 4,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins the background sweep loop
// - Initial sweep and periodic sweeps both run in a background goroutine
// - Does not block server startup
func (w *Sweeper) Start(ctx context.Context) error {
	logging.Default().Info("Schedule sweeper starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *Sweeper) Stop() {
	logging.Default().Info("Schedule sweeper stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Schedule sweeper stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *Sweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	// Catch up on runs that came due while the server was down
	if err := w.sweep(ctx); err != nil {
		logging.Default().Error("Initial sweep failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("Sweep failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Schedule sweeper received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Schedule sweeper context cancelled")
			return
		}
	}
}

// sweep fires every run whose FireAt has passed. Each run is marked done or
// failed individually so one bad run never blocks the rest of the batch.
func (w *Sweeper) sweep(ctx context.Context) error {
	due, err := w.repo.Schedule().ListDue(ctx, time.Now().UTC())
	if err != nil {
		return goerr.Wrap(err, "failed to list due runs")
	}
	if len(due) == 0 {
		return nil
	}

	logger := logging.From(ctx)
	logger.Info("Firing due scheduled runs", "count", len(due))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(w.concurrency)

	for _, run := range due {
		grp.Go(func() error {
			if err := w.runner.RunScheduled(grpCtx, run); err != nil {
				logger.Error("Scheduled run failed",
					"run_id", run.ID,
					"automation_id", run.AutomationID,
					"error", err.Error())
				if markErr := w.repo.Schedule().MarkFailed(grpCtx, run.ID, err.Error()); markErr != nil {
					return goerr.Wrap(markErr, "failed to mark run as failed", goerr.V("run_id", run.ID))
				}
				return nil
			}

			if err := w.repo.Schedule().MarkDone(grpCtx, run.ID); err != nil {
				return goerr.Wrap(err, "failed to mark run as done", goerr.V("run_id", run.ID))
			}
			return nil
		})
	}

	return grp.Wait()
}
