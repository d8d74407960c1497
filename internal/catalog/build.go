// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Build validates raw snapshot rows and computes every derived feature.
// now is the reference instant for DaysSinceRelease.
//
// It fails with ErrEmptyCatalog for an empty input and with a *DataLoadError
// when a row is missing title, vote_average or vote_count, or carries an
// unparseable number.
func Build(records []RawMovie, now time.Time) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}

	movies := make([]Movie, len(records))
	for i := range records {
		m, err := parseMovie(i+1, &records[i])
		if err != nil {
			return nil, err
		}
		movies[i] = m
	}

	votes := make([]float64, len(movies))
	averages := make([]float64, len(movies))
	popularity := make([]float64, len(movies))
	for i := range movies {
		votes[i] = movies[i].VoteCount
		averages[i] = movies[i].VoteAverage
		popularity[i] = movies[i].Popularity
	}

	c := Mean(averages)
	m := Quantile(votes, VoteQuantileLevel)

	weighted := make([]float64, len(movies))
	for i := range movies {
		weighted[i] = WeightedRating(movies[i].VoteCount, movies[i].VoteAverage, m, c)
	}

	normPopularity := MinMaxScale(popularity)
	normRating := MinMaxScale(weighted)

	for i := range movies {
		movies[i].Features = Features{
			WeightedRating:       weighted[i],
			DaysSinceRelease:     DaysSince(movies[i].ReleaseDate, now),
			NormalizedPopularity: normPopularity[i],
			NormalizedRating:     normRating[i],
		}
		movies[i].Features.CombinedText = CombinedText(&movies[i])
	}

	return &Catalog{
		Movies:       movies,
		MeanVote:     c,
		VoteQuantile: m,
		BuiltAt:      now,
	}, nil
}

// parseMovie converts one raw row. row is 1-based for error reporting.
func parseMovie(row int, r *RawMovie) (Movie, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return Movie{}, &DataLoadError{Row: row, Field: ColumnTitle, Reason: "missing required value"}
	}

	voteAverage, err := parseRequired(row, ColumnVoteAverage, r.VoteAverage)
	if err != nil {
		return Movie{}, err
	}
	voteCount, err := parseRequired(row, ColumnVoteCount, r.VoteCount)
	if err != nil {
		return Movie{}, err
	}
	if voteCount < 0 {
		return Movie{}, &DataLoadError{Row: row, Field: ColumnVoteCount, Reason: "must be non-negative"}
	}

	// Popularity is optional; a blank value scales as zero.
	var popularity float64
	if p := strings.TrimSpace(r.Popularity); p != "" {
		popularity, err = parseFinite(p)
		if err != nil {
			return Movie{}, &DataLoadError{Row: row, Field: ColumnPopularity, Reason: "invalid number", Err: err}
		}
	}

	return Movie{
		ID:          strings.TrimSpace(r.ID),
		Title:       title,
		Overview:    strings.TrimSpace(r.Overview),
		Genres:      SplitList(r.Genres),
		Directors:   SplitList(r.Director),
		Cast:        SplitList(r.Cast),
		ReleaseDate: ParseReleaseDate(r.ReleaseDate),
		VoteAverage: voteAverage,
		VoteCount:   voteCount,
		Popularity:  popularity,
		PosterURL:   strings.TrimSpace(r.PosterURL),
	}, nil
}

func parseRequired(row int, field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, &DataLoadError{Row: row, Field: field, Reason: "missing required value"}
	}
	f, err := parseFinite(value)
	if err != nil {
		return 0, &DataLoadError{Row: row, Field: field, Reason: "invalid number", Err: err}
	}
	return f, nil
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}
