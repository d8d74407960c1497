// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend turns a movie catalog snapshot into an IndexedCatalog and
// answers "more like this" queries against it.
//
// # Pipeline
//
// Build runs once at startup:
//
//  1. catalog.Build validates rows and derives weighted rating, recency and
//     normalized popularity/rating.
//  2. textvec.Fit vectorizes each movie's combined text (TF-IDF, English stop
//     words removed, unigrams and bigrams, 5000 term vocabulary).
//  3. textvec.CosineMatrix computes every pairwise similarity.
//
// Queries then go through two steps:
//
//   - Resolve fuzzy-matches a free-text title (WRatio, default threshold 80).
//     A miss is a normal outcome reported as ok == false.
//   - Rank scores every other movie as cosine similarity plus 0.2 times the
//     genre Jaccard index, dropping candidates whose similarity is at or
//     below 0.1, and returns the top n.
//
// # Concurrency
//
// An IndexedCatalog is immutable after Build. Resolve, Rank, Recommend and
// MoodPicks may be called from any number of goroutines. The only shared
// mutable state is the resolver cache, which locks internally.
//
// # Memory
//
// The similarity matrix holds catalog_size² float64 values. Build refuses
// snapshots larger than Config.MaxCatalogSize with ErrCatalogTooLarge.
//
// # Usage
//
//	idx, err := recommend.Build(ctx, rows, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	views, match, err := idx.Recommend("the drak knight", 5)
//	if errors.Is(err, recommend.ErrNoMatch) {
//	    // tell the user we could not find the title
//	}
package recommend
