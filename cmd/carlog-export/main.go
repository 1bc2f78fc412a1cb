// Command carlog-export dumps the ledger as a JSON backup to stdout or a
// file, using the same document format the dashboard download serves.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"carlog/internal/config"
	"carlog/internal/export"
	"carlog/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	out := flag.String("o", "", "output file (default: stdout)")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := repo.LoadAll(ctx)
	if err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("Failed to create output file", "error", err, "path", *out)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, export.Build(snap, time.Now())); err != nil {
		logger.Error("Failed to write export", "error", err)
		os.Exit(1)
	}

	logger.Info("Export complete",
		"vehicles", len(snap.Vehicles),
		"maintenance_records", len(snap.MaintenanceRecords),
		"fuel_records", len(snap.FuelRecords))
}
