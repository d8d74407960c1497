// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/cinematch/internal/metrics"
)

type candidate struct {
	index int
	base  float64
	genre float64
	score float64
}

// Rank returns up to n movies most similar to the anchor, best first.
//
// Every other movie whose similarity to the anchor exceeds RelevanceFloor
// is scored as similarity + GenreBonusWeight * genre Jaccard. Equal scores
// keep catalog order. The anchor is never returned. An empty result is not
// an error.
func (x *IndexedCatalog) Rank(anchor, n int) ([]RecommendationView, error) {
	if anchor < 0 || anchor >= x.catalog.Len() {
		return nil, &InvalidAnchorError{Index: anchor, Size: x.catalog.Len()}
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	start := time.Now()
	candidates := x.candidates(anchor)
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	views := make([]RecommendationView, len(candidates))
	for i, c := range candidates {
		views[i] = NewView(c.index, &x.catalog.Movies[c.index], c.score)
	}

	metrics.RecordRank(time.Since(start), len(views))
	return views, nil
}

// candidates returns every eligible candidate for anchor, sorted.
func (x *IndexedCatalog) candidates(anchor int) []candidate {
	row := x.similarity.Row(anchor)
	anchorGenres := x.genres[anchor]

	out := make([]candidate, 0, 64)
	for i, base := range row {
		if i == anchor {
			continue
		}
		if base <= RelevanceFloor {
			continue
		}
		genre := jaccard(anchorGenres, x.genres[i])
		out = append(out, candidate{
			index: i,
			base:  base,
			genre: genre,
			score: base + GenreBonusWeight*genre,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].score > out[b].score
	})
	return out
}

// Recommend resolves query and ranks the matched movie. It returns
// ErrNoMatch when the query does not resolve.
func (x *IndexedCatalog) Recommend(query string, n int) ([]RecommendationView, Match, error) {
	match, ok := x.Resolve(query)
	if !ok {
		return nil, Match{}, ErrNoMatch
	}
	views, err := x.Rank(match.Index, n)
	if err != nil {
		return nil, match, err
	}
	return views, match, nil
}
