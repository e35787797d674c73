// Package main is the entry point of the habithero command line tool.
//
// Storage is chosen by STORAGE_DRIVER: "memory" keeps everything for the
// lifetime of one invocation, "postgres" persists to DATABASE_URL with an
// optional Redis character cache in front.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/habit-hero/habit-hero/config"
	"github.com/habit-hero/habit-hero/internal/interface/cli"
	"github.com/habit-hero/habit-hero/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Debug("starting habithero",
		"env", cfg.App.Environment,
		"version", cfg.App.Version,
		"storage", cfg.Storage.Driver,
	)

	return cli.Execute(ctx, cli.ConfigOpener(cfg, log))
}

// setupLogger configures structured logging on stderr so command output
// on stdout stays clean. Production always logs JSON.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(cfg.Observability.LogLevel)
	opts.Format = logger.ParseFormat(cfg.Observability.LogFormat)
	if cfg.IsProduction() {
		opts.Format = logger.FormatJSON
	}

	log := logger.New(opts)
	slog.SetDefault(log)

	return log
}
