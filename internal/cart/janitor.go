package cart

import (
	"context"
	"log/slog"
	"time"
)

// JanitorConfig controls the background cart sweeper.
type JanitorConfig struct {
	// SweepInterval is how often to scan for abandoned carts.
	SweepInterval time.Duration

	// MaxIdle is how long a cart may sit untouched before it is dropped.
	MaxIdle time.Duration
}

// Janitor sweeps abandoned session carts in the background. Carts live in
// memory only, so sessions that never reach checkout would otherwise
// accumulate for the life of the process.
type Janitor struct {
	config JanitorConfig
	cart   *Service
	logger *slog.Logger
}

// NewJanitor creates a cart sweeper with sensible defaults.
func NewJanitor(cart *Service, config JanitorConfig, logger *slog.Logger) *Janitor {
	if config.SweepInterval == 0 {
		config.SweepInterval = 5 * time.Minute
	}
	if config.MaxIdle == 0 {
		config.MaxIdle = 2 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Janitor{
		config: config,
		cart:   cart,
		logger: logger,
	}
}

// Start sweeps on an interval until the context is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	j.logger.Info("cart janitor starting",
		"sweep_interval", j.config.SweepInterval,
		"max_idle", j.config.MaxIdle,
	)

	ticker := time.NewTicker(j.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("cart janitor shutting down")
			return ctx.Err()

		case <-ticker.C:
			if removed := j.cart.PruneIdle(j.config.MaxIdle); removed > 0 {
				j.logger.Info("pruned abandoned carts", "count", removed)
			}
		}
	}
}
