// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main fetches popular movies from TMDB and writes the CSV catalog
// snapshot read by the server.
//
// # Configuration
//
// Uses the same layered configuration as the server. Relevant settings:
//   - TMDB_API_KEY: required
//   - TMDB_PAGES: popular-list pages to fetch, 20 movies each (default: 300)
//   - TMDB_REQUESTS_PER_SECOND: outbound request rate (default: 4)
//   - SNAPSHOT_OUTPUT_PATH: CSV destination (default: data/movies.csv)
//
// The snapshot is written to a temporary file beside the destination and
// renamed into place, so a server never reads a partial file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cfg.TMDB, logging.WithComponent("snapshot")); err != nil {
		logging.Fatal().Err(err).Msg("Snapshot failed")
	}
}

// run fetches the snapshot and writes it to cfg.OutputPath.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func run(ctx context.Context, cfg *config.TMDBConfig, logger zerolog.Logger) error {
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	client, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Int("pages", cfg.Pages).
		Float64("requests_per_second", cfg.RequestsPerSecond).
		Str("output", cfg.OutputPath).
		Msg("Fetching TMDB snapshot")

	rows, stats, err := client.FetchSnapshot(ctx, cfg.Pages)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: TMDB returned no movies", catalog.ErrEmptyCatalog)
	}

	if err := writeSnapshot(cfg.OutputPath, rows); err != nil {
		return err
	}

	logger.Info().
		Int("movies", stats.Movies).
		Int("pages", stats.Pages).
		Int("skipped", stats.Skipped).
		Int("duplicates", stats.Duplicates).
		Dur("duration", stats.Duration).
		Str("output", cfg.OutputPath).
		Msg("Snapshot written")
	return nil
}

// writeSnapshot writes rows to a temporary file in the destination
// directory and renames it over path.
func writeSnapshot(path string, rows []catalog.RawMovie) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := catalog.WriteCSV(tmp, rows); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}
