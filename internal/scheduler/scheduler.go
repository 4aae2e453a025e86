package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/amishk599/jobfeed/internal/dispatcher"
)

// Runner performs one complete run. *dispatcher.Dispatcher satisfies it.
type Runner interface {
	Run(ctx context.Context) (dispatcher.Result, error)
}

// Scheduler owns the watch loop: it runs once immediately, then once per
// interval until ctx is cancelled. Runs never overlap.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that invokes runner at the given interval.
func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. A failed run is logged and the loop continues.
// It returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	res, err := s.runner.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("run failed", "error", err, "delivered", res.Delivered)
		return
	}
	s.logger.Debug("run finished",
		"delivered", res.Delivered,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
}
