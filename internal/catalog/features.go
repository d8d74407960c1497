// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"math"
	"sort"
	"strings"
	"time"
)

// VoteQuantileLevel is the vote-count percentile used as the shrinkage strength.
const VoteQuantileLevel = 0.90

// Combined text weights (number of repetitions per field).
const (
	titleWeight    = 3
	genreWeight    = 2
	overviewWeight = 1
	directorWeight = 2
	castWeight     = 1
)

// WeightedRating pulls a movie's vote average R toward the catalog mean C.
// v is the movie's vote count and m the shrinkage strength:
//
//	WR = v/(v+m)*R + m/(m+v)*C
//
// A degenerate catalog (m == 0) returns R unchanged.
func WeightedRating(v, r, m, c float64) float64 {
	if m == 0 {
		return r
	}
	return v/(v+m)*r + m/(m+v)*c
}

// Quantile returns the q-th quantile (0..1) of values using linear
// interpolation between the closest ranks. values is not modified.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MinMaxScale scales values into [0, 1]. When every value is equal the result
// is all zeros.
func MinMaxScale(values []float64) []float64 {
	scaled := make([]float64, len(values))
	if len(values) == 0 {
		return scaled
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	rang := maxVal - minVal
	if rang == 0 {
		return scaled
	}

	for i, v := range values {
		scaled[i] = (v - minVal) / rang
	}
	return scaled
}

// releaseLayouts are tried in order when parsing release dates.
var releaseLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// ParseReleaseDate parses a snapshot release date. Empty or unparseable
// values return nil.
func ParseReleaseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// DaysSince returns the whole days elapsed from release to now, rounding
// toward negative infinity. A nil release yields nil.
func DaysSince(release *time.Time, now time.Time) *int {
	if release == nil {
		return nil
	}
	days := int(math.Floor(now.Sub(*release).Hours() / 24))
	return &days
}

// SplitList splits comma-joined snapshot text into trimmed, non-empty items.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// JoinList is the presentation inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// CombinedText builds the vectorizer input for a movie: title x3, genres x2,
// overview x1, director x2, cast x1, space separated. Empty fields
// contribute nothing.
func CombinedText(m *Movie) string {
	fields := []struct {
		text   string
		weight int
	}{
		{m.Title, titleWeight},
		{JoinList(m.Genres), genreWeight},
		{m.Overview, overviewWeight},
		{JoinList(m.Directors), directorWeight},
		{JoinList(m.Cast), castWeight},
	}

	parts := make([]string, 0, 9)
	for _, f := range fields {
		text := strings.TrimSpace(f.text)
		if text == "" {
			continue
		}
		for i := 0; i < f.weight; i++ {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
