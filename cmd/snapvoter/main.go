package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"SnapVoter/internal/logger"
	"SnapVoter/internal/voter"
)

const usage = `usage: snapvoter <command> [flags]

commands:
  serve    run the HTTP API (default)
  export   write a snapshot of every stored record
  import   load a snapshot into the store
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to a subcommand.
func run(args []string) error {
	cmd := "serve"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		cfg, err := parseServeFlags(args)
		if err != nil {
			return err
		}
		if err := initLogger(cfg); err != nil {
			return err
		}
		return runServe(cfg)

	case "export", "import":
		cfg, err := parseSnapshotFlags(cmd, args)
		if err != nil {
			return err
		}
		if err := initLogger(cfg); err != nil {
			return err
		}
		if cmd == "export" {
			return runExport(cfg)
		}
		return runImport(cfg)

	case "help":
		fmt.Fprint(os.Stdout, usage)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// initLogger sets up the global logger at the configured level.
func initLogger(cfg *Config) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger.Init(level)

	return nil
}

// printStartupInfo displays the service configuration at startup.
func printStartupInfo(cfg *Config) {
	governance := cfg.GovernanceURL
	if cfg.Dev {
		governance = "dev registry"
	}

	logger.Info("starting snapvoter",
		"version", voter.Version,
		"http", cfg.HTTPAddress,
		"data", cfg.DataPath,
		"governance", governance,
	)
}
