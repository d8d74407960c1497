// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// loadSnapshot reads the raw catalog rows from the configured source.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func loadSnapshot(ctx context.Context, cfg *config.CatalogConfig, logger zerolog.Logger) ([]catalog.RawMovie, error) {
	switch cfg.Source {
	case config.SourceDuckDB:
		db, err := catalog.OpenDuckDB(cfg.DuckDBPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing DuckDB")
			}
		}()

		if cfg.Path != "" {
			if err := catalog.ImportCSVToDuckDB(ctx, db, cfg.Path, cfg.Table); err != nil {
				return nil, err
			}
			logger.Info().Str("csv", cfg.Path).Str("table", cfg.Table).Msg("CSV snapshot imported into DuckDB")
		}
		return catalog.ReadDuckDB(ctx, db, cfg.Table)

	case config.SourceCSV, "":
		return catalog.ReadCSVFile(cfg.Path)

	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// initCatalog loads the snapshot and builds the recommendation index.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*recommend.IndexedCatalog, error) {
	rows, err := loadSnapshot(ctx, &cfg.Catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	logger.Info().
		Str("source", cfg.Catalog.Source).
		Int("rows", len(rows)).
		Msg("Catalog snapshot loaded")

	index, err := recommend.Build(ctx, rows, cfg.Recommend.Engine(), logger)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}
	return index, nil
}
