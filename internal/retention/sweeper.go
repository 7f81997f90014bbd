// Package retention prunes stored simulations older than a configured age.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/cpusched/internal/store"
)

// Config holds sweeper configuration. A zero MaxAge disables pruning.
type Config struct {
	MaxAge   time.Duration
	Interval time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Interval: time.Minute}
}

// Sweeper periodically deletes simulations created more than MaxAge ago.
type Sweeper struct {
	store  store.Store
	config Config
	logger *slog.Logger
	now    func() time.Time
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSweeper creates a new retention sweeper.
func NewSweeper(st store.Store, cfg Config, logger *slog.Logger) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Sweeper{
		store:  st,
		config: cfg,
		logger: logger.With("component", "retention"),
		now:    time.Now,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Enabled reports whether the sweeper has anything to do.
func (s *Sweeper) Enabled() bool {
	return s.config.MaxAge > 0
}

// Start runs the sweep loop. Blocks until ctx is cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	defer close(s.doneCh)
	if !s.Enabled() {
		s.logger.Info("retention disabled")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		}
	}

	s.logger.Info("retention started", "max_age", s.config.MaxAge, "interval", s.config.Interval)
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("retention stopping (context cancelled)")
			return ctx.Err()
		case <-s.stopCh:
			s.logger.Info("retention stopping (stop called)")
			return nil
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil {
				s.logger.Error("sweep error", "error", err)
			}
		}
	}
}

// Stop shuts the loop down and waits for the current sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

// Tick runs one sweep and returns the number of simulations removed.
func (s *Sweeper) Tick(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}
	cutoff := s.now().Add(-s.config.MaxAge)
	n, err := s.store.DeleteSimulationsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	if n > 0 {
		s.logger.Info("pruned simulations", "count", n, "cutoff", cutoff)
	}
	return n, nil
}
