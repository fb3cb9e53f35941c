// Package maintenance runs the batch retention sweeps over Postgres:
// expired idea sets and low-traffic venues.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
)

// Maintainer owns the sweep connection pool
type Maintainer struct {
	pool  *pgxpool.Pool
	sweep config.SweepConfig
}

// New connects a pgx pool for batch maintenance
func New(ctx context.Context, cfg *config.Config) (*Maintainer, error) {
	log := logger.GetLogger("maintenance")

	poolConfig, err := pgxpool.ParseConfig(cfg.DB.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return &Maintainer{pool: pool, sweep: cfg.Sweep}, nil
}

// Close releases the pool
func (m *Maintainer) Close() {
	if m.pool != nil {
		m.pool.Close()
	}
}

// Run executes one full sweep pass
func (m *Maintainer) Run(ctx context.Context) error {
	log := logger.GetLogger("maintenance")
	start := time.Now()

	expired, err := m.sweepIdeaSets(ctx)
	if err != nil {
		return fmt.Errorf("idea set sweep: %w", err)
	}

	venues, err := m.sweepVenues(ctx)
	if err != nil {
		return fmt.Errorf("venue sweep: %w", err)
	}

	log.Infof("sweep finished in %s: %d expired idea sets, %d stale venues",
		time.Since(start).Round(time.Millisecond), expired, venues)
	return nil
}

// sweepIdeaSets deletes cache rows whose expiry has passed
func (m *Maintainer) sweepIdeaSets(ctx context.Context) (int64, error) {
	tag, err := m.pool.Exec(ctx, `DELETE FROM idea_sets WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// sweepVenues deletes venues below the view threshold that nobody has
// viewed within the retention window
func (m *Maintainer) sweepVenues(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -m.sweep.VenueRetentionDays)

	tag, err := m.pool.Exec(ctx, `
		DELETE FROM venues
		WHERE view_count < $1
		  AND (last_viewed IS NULL OR last_viewed < $2)
		  AND created_at < $2`,
		m.sweep.VenueViewThreshold, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
