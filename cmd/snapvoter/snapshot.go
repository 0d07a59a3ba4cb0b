package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"SnapVoter/internal/logger"
	"SnapVoter/internal/state"
	"SnapVoter/internal/statesync"
	"SnapVoter/internal/storage"
)

// runExport writes a snapshot of the store to cfg.SnapshotPath.
func runExport(cfg *Config) error {
	start := time.Now()

	db, err := storage.New(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("open storage:\n%w", err)
	}
	defer db.Close()

	data, err := statesync.Export(state.NewStore(db))
	if err != nil {
		return fmt.Errorf("export:\n%w", err)
	}

	// Logs share stdout, so a snapshot written there is left unannounced
	if cfg.SnapshotPath == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("write snapshot:\n%w", err)
		}
		return nil
	}

	if err := os.WriteFile(cfg.SnapshotPath, data, 0644); err != nil {
		return fmt.Errorf("write snapshot:\n%w", err)
	}

	logger.Info("snapshot exported", "bytes", len(data), logger.Timed(start))

	return nil
}

// runImport loads the snapshot at cfg.SnapshotPath into the store.
func runImport(cfg *Config) error {
	start := time.Now()

	var data []byte
	var err error

	if cfg.SnapshotPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(cfg.SnapshotPath)
	}
	if err != nil {
		return fmt.Errorf("read snapshot:\n%w", err)
	}

	db, err := storage.New(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("open storage:\n%w", err)
	}
	defer db.Close()

	n, err := statesync.Import(state.NewStore(db), data)
	if err != nil {
		return fmt.Errorf("import:\n%w", err)
	}

	logger.Info("snapshot imported", "records", n, logger.Timed(start))

	return nil
}
