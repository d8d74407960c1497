// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"strconv"

	"github.com/tomtom215/cinematch/internal/fuzzy"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Resolve finds the catalog title that best matches query using the
// configured threshold. ok is false when no title scores at or above it.
func (x *IndexedCatalog) Resolve(query string) (Match, bool) {
	return x.ResolveWithThreshold(query, x.config.MatchThreshold)
}

// ResolveWithThreshold is Resolve with an explicit 0-100 threshold. When
// several titles share the best score the earliest in catalog order wins.
func (x *IndexedCatalog) ResolveWithThreshold(query string, threshold int) (Match, bool) {
	key := strconv.Itoa(threshold) + "\x00" + fuzzy.Process(query)
	if r, hit := x.resolved.Get(key); hit {
		metrics.RecordResolve(r.ok, true)
		return r.match, r.ok
	}

	var r resolution
	if best, ok := x.matcher.BestAbove(query, threshold); ok {
		r = resolution{
			match: Match{Index: best.Index, Title: best.Choice, Score: best.Score},
			ok:    true,
		}
	}
	x.resolved.Add(key, r)
	metrics.RecordResolve(r.ok, false)

	x.logger.Debug().
		Str("query", query).
		Bool("matched", r.ok).
		Int("index", r.match.Index).
		Int("score", r.match.Score).
		Msg("title resolved")

	return r.match, r.ok
}
