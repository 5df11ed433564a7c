// Command importer copies a ledger written by the original Flask
// application into a Splitmate database.
//
//	importer -from ./splitmate.db [-to ./data/splitmate.db]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mmynk/splitmate/internal/config"
	"github.com/mmynk/splitmate/internal/storage/sqlite"
	"github.com/mmynk/splitmate/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	from := flag.String("from", "", "path to the legacy database (required)")
	to := flag.String("to", cfg.DBPath, "path to the target database")
	level := flag.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.Parse()

	logging.Setup(*level)

	if *from == "" {
		flag.Usage()
		return errors.New("-from is required")
	}
	if _, err := os.Stat(*from); err != nil {
		return fmt.Errorf("legacy database: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := sqlite.New(*to)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()

	stats, err := store.ImportLegacy(ctx, *from)
	if err != nil {
		return err
	}

	slog.Info("Import complete",
		"from", *from,
		"to", *to,
		"friends", stats.Friends,
		"expenses", stats.Expenses,
		"settlements", stats.Settlements,
		"skipped_expenses", stats.SkippedExpenses,
		"skipped_settlements", stats.SkippedSettlements,
		"dropped_participants", stats.DroppedParticipants,
	)
	return nil
}
