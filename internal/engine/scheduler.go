package engine

import (
	"context"
	"log/slog"
	"time"
)

// Ticker is the callback surface the scheduler drives.
type Ticker interface {
	Tick(ctx context.Context) Result
}

// Scheduler fires autosave ticks at a fixed period. It holds no state
// beyond "is armed": cancelling the context stops the ticker and
// guarantees no tick fires after Run returns.
type Scheduler struct {
	interval time.Duration
	ticker   Ticker
	logger   *slog.Logger
}

// NewScheduler creates a scheduler driving t every interval.
func NewScheduler(interval time.Duration, t Ticker, logger *slog.Logger) *Scheduler {
	return &Scheduler{interval: interval, ticker: t, logger: logger}
}

// Run blocks, firing ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.logger.Info("autosave started", slog.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("autosave stopped")
			return nil
		case <-t.C:
			s.ticker.Tick(ctx)
		}
	}
}
