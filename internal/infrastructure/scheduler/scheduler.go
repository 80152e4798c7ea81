// Package scheduler owns the recurring loyalty expiry sweep. The sweep runs
// once immediately at startup and then on a fixed period, with no jitter and
// no persisted schedule: a restart simply re-triggers an immediate run.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

const defaultInterval = 24 * time.Hour

// ExpirySweeper drives the periodic expiry sweep.
type ExpirySweeper struct {
	sweep    ports.SweepService
	interval time.Duration
	logger   zerolog.Logger
}

func NewExpirySweeper(sweep ports.SweepService, interval time.Duration, logger zerolog.Logger) *ExpirySweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &ExpirySweeper{sweep: sweep, interval: interval, logger: logger}
}

// Start launches the sweep loop in its own goroutine. The loop stops when
// ctx is cancelled.
func (s *ExpirySweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *ExpirySweeper) run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("loyalty expiry scheduler started")

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("loyalty expiry scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce contains each iteration's failure so a bad sweep never kills the
// recurring schedule.
func (s *ExpirySweeper) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("expiry sweep panicked")
		}
	}()

	if _, err := s.sweep.Run(ctx, domain.SystemActor); err != nil {
		s.logger.Error().Err(err).Msg("expiry sweep failed")
	}
}
