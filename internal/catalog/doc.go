// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog holds the movie catalog model and the feature derivation
// that runs once per snapshot.
//
// # Snapshot Rows
//
// Loaders (CSV file, DuckDB table) produce RawMovie rows whose fields are the
// unparsed snapshot text. Build validates them, parses numbers and dates, and
// attaches the derived features:
//
//   - WeightedRating: vote average shrunk toward the catalog mean, with the
//     90th-percentile vote count as the shrinkage strength
//   - DaysSinceRelease: whole days between release and the build clock
//   - NormalizedPopularity / NormalizedRating: min-max scaled to [0, 1]
//   - CombinedText: weighted blend of title, genres, overview, director, cast
//
// A Catalog is immutable once built and safe for concurrent reads.
package catalog
