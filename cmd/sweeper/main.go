package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
	"github.com/tvonkoch-eng/D8-sub000/internal/maintenance"
	"github.com/tvonkoch-eng/D8-sub000/internal/telemetry"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.GetLogger("main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("failed to load configuration: %v", err)
		os.Exit(1)
	}

	telShutdown, err := telemetry.Init(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Warnf("telemetry init failed (continuing): %v", err)
		telShutdown = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telShutdown(shutdownCtx); err != nil {
			log.Warnf("telemetry shutdown failed: %v", err)
		}
	}()

	m, err := maintenance.New(ctx, cfg)
	if err != nil {
		log.Errorf("database connection failed: %v", err)
		os.Exit(1)
	}
	defer m.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutdown signal received")
		cancel()
	}()

	if err := run(ctx, cfg, m); err != nil && err != context.Canceled {
		log.Errorf("sweeper failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, m *maintenance.Maintainer) error {
	log := logger.GetLogger("main")
	tz := cfg.Batch.Location()

	if cfg.Batch.RunAtStart || cfg.Batch.Mode == "once" {
		if err := m.Run(ctx); err != nil {
			log.Errorf("sweep failed: %v", err)
		}
	}

	switch cfg.Batch.Mode {
	case "once":
		return nil

	case "interval":
		interval := time.Duration(cfg.Batch.IntervalSeconds) * time.Second
		log.Infof("running every %s", interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := m.Run(ctx); err != nil {
					log.Errorf("sweep failed: %v", err)
				}
			}
		}

	default: // daily
		for {
			next, err := maintenance.NextDailyRun(time.Now(), cfg.Batch.TimeHHMM, tz)
			if err != nil {
				return err
			}
			log.Infof("next sweep at %s", next.Format(time.RFC3339))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Until(next)):
				if err := m.Run(ctx); err != nil {
					log.Errorf("sweep failed: %v", err)
				}
			}
		}
	}
}
