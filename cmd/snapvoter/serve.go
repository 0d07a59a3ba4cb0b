package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"SnapVoter/internal/api"
	"SnapVoter/internal/clock"
	"SnapVoter/internal/governance"
	"SnapVoter/internal/logger"
	"SnapVoter/internal/metrics"
	"SnapVoter/internal/state"
	"SnapVoter/internal/storage"
	"SnapVoter/internal/voter"
)

// runServe runs the HTTP API until SIGINT or SIGTERM.
func runServe(cfg *Config) error {
	printStartupInfo(cfg)

	db, err := storage.New(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("open storage:\n%w", err)
	}
	defer db.Close()

	m := metrics.New(prometheus.DefaultRegisterer)

	provider, daemon, err := newProvider(cfg, m)
	if err != nil {
		return err
	}

	store := state.NewStore(db)

	params, err := bindClock(store, cfg, time.Now())
	if err != nil {
		return err
	}

	logger.Info("slot clock bound", "genesis", params.Genesis.Format(time.RFC3339Nano), "slot", params.SlotDuration)

	svc, err := voter.New(store, provider, provider, provider,
		clock.NewSlotClock(params.Genesis, params.SlotDuration),
		voter.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("create voter service:\n%w", err)
	}

	server := api.New(cfg.HTTPAddress, svc, api.WithGatherer(prometheus.DefaultGatherer))
	if err := server.Start(); err != nil {
		return fmt.Errorf("start http api:\n%w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		return server.Stop()
	})

	if daemon != nil {
		g.Go(func() error {
			watchGovernance(ctx, daemon, cfg.GovernancePing)
			return nil
		})
	}

	return g.Wait()
}

// bindClock returns the clock parameters stored in the data directory, storing
// them on first start. Slots then never restart from zero across restarts.
func bindClock(store *state.Store, cfg *Config, now time.Time) (state.ClockParams, error) {
	var params state.ClockParams

	err := store.Update(func(tx *state.Txn) error {
		stored, err := tx.ClockParams()
		if err != nil && !errors.Is(err, state.ErrNotFound) {
			return err
		}

		if params, err = cfg.clockParams(stored, now); err != nil {
			return err
		}

		if stored != nil {
			return nil
		}

		return tx.PutClockParams(params)
	})
	if err != nil {
		return state.ClockParams{}, fmt.Errorf("bind slot clock:\n%w", err)
	}

	return params, nil
}

// newProvider returns the governance provider, and the daemon client when one
// is used.
func newProvider(cfg *Config, m *metrics.Metrics) (governance.Provider, *governance.Client, error) {
	if cfg.Dev {
		reg := governance.NewRegistry()

		if cfg.SeedPath != "" {
			f, err := os.Open(cfg.SeedPath)
			if err != nil {
				return nil, nil, fmt.Errorf("open seed:\n%w", err)
			}
			defer f.Close()

			if err := reg.LoadSeed(f); err != nil {
				return nil, nil, fmt.Errorf("load seed %s:\n%w", cfg.SeedPath, err)
			}

			logger.Info("dev registry seeded", "path", cfg.SeedPath)
		}

		return reg, nil, nil
	}

	c := governance.NewClient(cfg.GovernanceURL, governance.WithClientMetrics(m))

	ctx, cancel := context.WithTimeout(context.Background(), governance.DefaultQueryTimeout)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		logger.Warn("governance daemon not reachable", "url", cfg.GovernanceURL, "error", err)
	}

	return c, c, nil
}

// watchGovernance pings the daemon every interval and logs state changes.
func watchGovernance(ctx context.Context, c *governance.Client, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		err := c.Ping(ctx)

		switch {
		case err != nil && ctx.Err() != nil:
			return
		case err != nil && healthy:
			logger.Warn("governance daemon unreachable", "error", err)
		case err == nil && !healthy:
			logger.Info("governance daemon reachable again")
		}

		healthy = err == nil
	}
}
