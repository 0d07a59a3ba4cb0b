package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"SnapVoter/internal/state"
)

// defaultSlotDuration is the slot length of a new data directory.
const defaultSlotDuration = 400 * time.Millisecond

// Config holds the service configuration.
// Every flag falls back to a SNAPVOTER_* environment variable.
type Config struct {
	// DataPath is the directory for persistent storage.
	DataPath string

	// HTTPAddress is the HTTP API listen address.
	HTTPAddress string

	// GovernanceURL is the base URL of the governance daemon.
	GovernanceURL string

	// GovernancePing is how often the governance daemon is health checked.
	GovernancePing time.Duration

	// SlotDuration is the length of one slot. Zero means the stored value, or
	// defaultSlotDuration for a new data directory.
	SlotDuration time.Duration

	// Genesis is the start of slot 0, RFC 3339. Empty means the stored value,
	// or the first start for a new data directory.
	Genesis string

	// LogLevel is the minimum log level.
	LogLevel string

	// Dev serves governance records from an in-memory registry instead of a daemon.
	Dev bool

	// SeedPath is the JSON file loaded into the dev registry.
	SeedPath string

	// SnapshotPath is the export destination or import source; "-" is stdio.
	SnapshotPath string
}

// newFlagSet registers the flags shared by every subcommand.
func newFlagSet(name string, cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&cfg.DataPath, "data", envOr("SNAPVOTER_DATA", "./data"), "Data directory path")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("SNAPVOTER_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")

	return fs
}

// parseServeFlags parses the flags of the serve subcommand.
func parseServeFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := newFlagSet("serve", cfg)

	fs.StringVar(&cfg.HTTPAddress, "http", envOr("SNAPVOTER_HTTP", ":8080"), "HTTP API address")
	fs.StringVar(&cfg.GovernanceURL, "governance", envOr("SNAPVOTER_GOVERNANCE_URL", "http://127.0.0.1:8899"), "Governance daemon URL")
	fs.DurationVar(&cfg.GovernancePing, "governance-ping", envDuration("SNAPVOTER_GOVERNANCE_PING", 30*time.Second), "Governance daemon health check interval")
	fs.DurationVar(&cfg.SlotDuration, "slot", envDuration("SNAPVOTER_SLOT_DURATION", 0), "Slot duration (default: stored, or 400ms for a new data directory)")
	fs.StringVar(&cfg.Genesis, "genesis", envOr("SNAPVOTER_GENESIS", ""), "Start of slot 0, RFC 3339 (default: stored, or the first start)")
	fs.BoolVar(&cfg.Dev, "dev", envBool("SNAPVOTER_DEV"), "Serve governance records from an in-memory registry")
	fs.StringVar(&cfg.SeedPath, "seed", envOr("SNAPVOTER_SEED", ""), "Dev registry seed file (JSON)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.SlotDuration < 0 {
		return nil, fmt.Errorf("slot duration must be positive: %s", cfg.SlotDuration)
	}

	if _, err := cfg.genesisTime(); err != nil {
		return nil, err
	}

	if cfg.SeedPath != "" && !cfg.Dev {
		return nil, fmt.Errorf("-seed requires -dev")
	}

	return cfg, nil
}

// parseSnapshotFlags parses the flags of the export and import subcommands.
func parseSnapshotFlags(name string, args []string) (*Config, error) {
	cfg := &Config{}
	fs := newFlagSet(name, cfg)

	fs.StringVar(&cfg.SnapshotPath, "file", "-", "Snapshot file (- for stdout/stdin)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// genesisTime parses the configured start of slot 0. The zero time means unset.
func (c *Config) genesisTime() (time.Time, error) {
	if c.Genesis == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, c.Genesis)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse genesis:\n%w", err)
	}

	return t, nil
}

// clockParams resolves the clock of the data directory. Stored parameters win;
// flags that contradict them are an error. Without stored parameters the flags
// apply, with now and defaultSlotDuration filling the unset ones.
func (c *Config) clockParams(stored *state.ClockParams, now time.Time) (state.ClockParams, error) {
	genesis, err := c.genesisTime()
	if err != nil {
		return state.ClockParams{}, err
	}

	if stored != nil {
		if !genesis.IsZero() && !genesis.Equal(stored.Genesis) {
			return state.ClockParams{}, fmt.Errorf("%w: -genesis %s, stored %s",
				state.ErrClockMismatch, genesis.Format(time.RFC3339), stored.Genesis.Format(time.RFC3339Nano))
		}

		if c.SlotDuration != 0 && c.SlotDuration != stored.SlotDuration {
			return state.ClockParams{}, fmt.Errorf("%w: -slot %s, stored %s",
				state.ErrClockMismatch, c.SlotDuration, stored.SlotDuration)
		}

		return *stored, nil
	}

	params := state.ClockParams{Genesis: genesis, SlotDuration: c.SlotDuration}

	if params.Genesis.IsZero() {
		params.Genesis = now.UTC()
	}

	if params.SlotDuration == 0 {
		params.SlotDuration = defaultSlotDuration
	}

	return params, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}
