package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"SnapVoter/internal/state"
	"SnapVoter/internal/storage"
)

func TestParseServeFlags_Defaults(t *testing.T) {
	t.Setenv("SNAPVOTER_HTTP", "")
	t.Setenv("SNAPVOTER_SLOT_DURATION", "")

	cfg, err := parseServeFlags(nil)
	if err != nil {
		t.Fatalf("parseServeFlags: %v", err)
	}

	if cfg.HTTPAddress != ":8080" {
		t.Errorf("http = %q, want :8080", cfg.HTTPAddress)
	}
	if cfg.SlotDuration != 0 || cfg.Genesis != "" {
		t.Errorf("slot = %s, genesis = %q; want both unset", cfg.SlotDuration, cfg.Genesis)
	}
	if cfg.Dev {
		t.Error("dev enabled by default")
	}
}

func TestParseServeFlags_EnvAndFlags(t *testing.T) {
	t.Setenv("SNAPVOTER_HTTP", ":9999")
	t.Setenv("SNAPVOTER_SLOT_DURATION", "1s")
	t.Setenv("SNAPVOTER_DEV", "true")

	cfg, err := parseServeFlags([]string{"-http", ":7000", "-seed", "seed.json"})
	if err != nil {
		t.Fatalf("parseServeFlags: %v", err)
	}

	// Flags win over the environment
	if cfg.HTTPAddress != ":7000" {
		t.Errorf("http = %q, want :7000", cfg.HTTPAddress)
	}
	if cfg.SlotDuration != time.Second {
		t.Errorf("slot = %s, want 1s", cfg.SlotDuration)
	}
	if !cfg.Dev || cfg.SeedPath != "seed.json" {
		t.Errorf("dev = %v, seed = %q", cfg.Dev, cfg.SeedPath)
	}
}

func TestParseServeFlags_Invalid(t *testing.T) {
	t.Setenv("SNAPVOTER_DEV", "")

	if _, err := parseServeFlags([]string{"-slot", "-1s"}); err == nil {
		t.Error("expected error for negative slot duration")
	}

	if _, err := parseServeFlags([]string{"-genesis", "yesterday"}); err == nil {
		t.Error("expected error for malformed genesis")
	}

	if _, err := parseServeFlags([]string{"-seed", "seed.json"}); err == nil {
		t.Error("expected error for seed without dev")
	}
}

func TestClockParams(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stored := &state.ClockParams{
		Genesis:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SlotDuration: time.Second,
	}

	tests := []struct {
		name    string
		cfg     Config
		stored  *state.ClockParams
		want    state.ClockParams
		wantErr bool
	}{
		{"new dir defaults", Config{}, nil, state.ClockParams{Genesis: now, SlotDuration: defaultSlotDuration}, false},
		{"new dir flags", Config{Genesis: "2025-06-01T00:00:00Z", SlotDuration: time.Second}, nil, *stored, false},
		{"stored wins over unset flags", Config{}, stored, *stored, false},
		{"matching flags", Config{Genesis: "2025-06-01T00:00:00Z", SlotDuration: time.Second}, stored, *stored, false},
		{"conflicting genesis", Config{Genesis: "2025-07-01T00:00:00Z"}, stored, state.ClockParams{}, true},
		{"conflicting slot", Config{SlotDuration: 400 * time.Millisecond}, stored, state.ClockParams{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.clockParams(tt.stored, now)
			if tt.wantErr {
				if !errors.Is(err, state.ErrClockMismatch) {
					t.Errorf("err = %v, want ErrClockMismatch", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("clockParams: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("params = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestBindClockAcrossRestarts opens the same data directory twice and checks
// the second start keeps the first start's genesis.
func TestBindClockAcrossRestarts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	first := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	restart := first.Add(200 * time.Second)

	open := func(cfg *Config, now time.Time) (state.ClockParams, error) {
		t.Helper()

		db, err := storage.New(dir)
		if err != nil {
			t.Fatalf("open storage: %v", err)
		}
		defer db.Close()

		return bindClock(state.NewStore(db), cfg, now)
	}

	before, err := open(&Config{}, first)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}

	after, err := open(&Config{}, restart)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}

	if !after.Genesis.Equal(first) || !after.Equal(before) {
		t.Fatalf("restart params = %s, want %s", after, before)
	}

	// Slot 500 was reached before the restart and is still reached after it
	slotAt := func(p state.ClockParams, at time.Time) int64 {
		return int64(at.Sub(p.Genesis) / p.SlotDuration)
	}
	if got := slotAt(after, restart); got != 500 {
		t.Errorf("slot after restart = %d, want 500", got)
	}

	if _, err := open(&Config{SlotDuration: time.Second}, restart); !errors.Is(err, state.ErrClockMismatch) {
		t.Errorf("changed slot: err = %v, want ErrClockMismatch", err)
	}

	if _, err := open(&Config{Genesis: "2026-01-02T04:00:00Z"}, restart); !errors.Is(err, state.ErrClockMismatch) {
		t.Errorf("moved genesis: err = %v, want ErrClockMismatch", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run([]string{"frobnicate"}); err == nil {
		t.Error("expected error for unknown command")
	}
}
