// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleRows() []RawMovie {
	return []RawMovie{
		{ID: "1", Title: "Alpha", VoteAverage: "5", VoteCount: "0", Popularity: "10", Genres: "Action, Comedy", ReleaseDate: "2025-12-22"},
		{ID: "2", Title: "Beta", VoteAverage: "7", VoteCount: "100", Popularity: "30", Genres: "Drama"},
		{ID: "3", Title: "Gamma", VoteAverage: "9", VoteCount: "200", Popularity: "20", Director: "Jane Doe", PosterURL: "http://img/3.jpg"},
	}
}

func TestBuild(t *testing.T) {
	cat, err := Build(sampleRows(), testNow)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if cat.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cat.Len())
	}
	if math.Abs(cat.MeanVote-7) > 1e-9 {
		t.Errorf("MeanVote = %f, want 7", cat.MeanVote)
	}
	if math.Abs(cat.VoteQuantile-180) > 1e-9 {
		t.Errorf("VoteQuantile = %f, want 180", cat.VoteQuantile)
	}

	// vote_count 0 shrinks fully to the catalog mean
	if got := cat.Movies[0].Features.WeightedRating; math.Abs(got-cat.MeanVote) > 1e-9 {
		t.Errorf("WeightedRating with zero votes = %f, want %f", got, cat.MeanVote)
	}

	if d := cat.Movies[0].Features.DaysSinceRelease; d == nil || *d != 10 {
		t.Errorf("DaysSinceRelease = %v, want 10", d)
	}
	if cat.Movies[1].Features.DaysSinceRelease != nil {
		t.Error("DaysSinceRelease should be nil without a release date")
	}

	if got := cat.Movies[0].Genres; len(got) != 2 || got[0] != "Action" || got[1] != "Comedy" {
		t.Errorf("Genres = %v, want [Action Comedy]", got)
	}
	if cat.Movies[2].Directors[0] != "Jane Doe" {
		t.Errorf("Directors = %v", cat.Movies[2].Directors)
	}
	if cat.Movies[0].Features.CombinedText == "" {
		t.Error("CombinedText is empty")
	}
	if !cat.BuiltAt.Equal(testNow) {
		t.Errorf("BuiltAt = %v, want %v", cat.BuiltAt, testNow)
	}
}

func TestBuild_NormalizedRanges(t *testing.T) {
	cat, err := Build(sampleRows(), testNow)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	minPop, maxPop := 2.0, -1.0
	minRating, maxRating := 2.0, -1.0
	for i := range cat.Movies {
		f := cat.Movies[i].Features
		if f.NormalizedPopularity < 0 || f.NormalizedPopularity > 1 {
			t.Errorf("movie %d NormalizedPopularity = %f out of range", i, f.NormalizedPopularity)
		}
		if f.NormalizedRating < 0 || f.NormalizedRating > 1 {
			t.Errorf("movie %d NormalizedRating = %f out of range", i, f.NormalizedRating)
		}
		minPop = math.Min(minPop, f.NormalizedPopularity)
		maxPop = math.Max(maxPop, f.NormalizedPopularity)
		minRating = math.Min(minRating, f.NormalizedRating)
		maxRating = math.Max(maxRating, f.NormalizedRating)
	}

	if minPop != 0 || maxPop != 1 {
		t.Errorf("popularity range = [%f, %f], want [0, 1]", minPop, maxPop)
	}
	if minRating != 0 || maxRating != 1 {
		t.Errorf("rating range = [%f, %f], want [0, 1]", minRating, maxRating)
	}
}

func TestBuild_DegenerateCatalog(t *testing.T) {
	rows := []RawMovie{
		{Title: "One", VoteAverage: "6", VoteCount: "0", Popularity: "5"},
		{Title: "Two", VoteAverage: "8", VoteCount: "0", Popularity: "5"},
	}

	cat, err := Build(rows, testNow)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if cat.VoteQuantile != 0 {
		t.Fatalf("VoteQuantile = %f, want 0", cat.VoteQuantile)
	}
	if cat.Movies[1].Features.WeightedRating != 8 {
		t.Errorf("WeightedRating = %f, want raw average 8", cat.Movies[1].Features.WeightedRating)
	}
	for i := range cat.Movies {
		if cat.Movies[i].Features.NormalizedPopularity != 0 {
			t.Errorf("movie %d NormalizedPopularity = %f, want 0 for all-equal column", i, cat.Movies[i].Features.NormalizedPopularity)
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name      string
		rows      []RawMovie
		wantField string
	}{
		{name: "missing title", rows: []RawMovie{{Title: " ", VoteAverage: "5", VoteCount: "1"}}, wantField: ColumnTitle},
		{name: "missing vote average", rows: []RawMovie{{Title: "A", VoteCount: "1"}}, wantField: ColumnVoteAverage},
		{name: "missing vote count", rows: []RawMovie{{Title: "A", VoteAverage: "5"}}, wantField: ColumnVoteCount},
		{name: "bad vote count", rows: []RawMovie{{Title: "A", VoteAverage: "5", VoteCount: "many"}}, wantField: ColumnVoteCount},
		{name: "negative vote count", rows: []RawMovie{{Title: "A", VoteAverage: "5", VoteCount: "-3"}}, wantField: ColumnVoteCount},
		{name: "nan average", rows: []RawMovie{{Title: "A", VoteAverage: "NaN", VoteCount: "3"}}, wantField: ColumnVoteAverage},
		{name: "bad popularity", rows: []RawMovie{{Title: "A", VoteAverage: "5", VoteCount: "3", Popularity: "x"}}, wantField: ColumnPopularity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.rows, testNow)
			if !errors.Is(err, ErrDataLoad) {
				t.Fatalf("Build() error = %v, want ErrDataLoad", err)
			}
			var dle *DataLoadError
			if !errors.As(err, &dle) {
				t.Fatalf("Build() error = %T, want *DataLoadError", err)
			}
			if dle.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", dle.Field, tt.wantField)
			}
			if dle.Row != 1 {
				t.Errorf("Row = %d, want 1", dle.Row)
			}
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	if _, err := Build(nil, testNow); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Build(nil) error = %v, want ErrEmptyCatalog", err)
	}
}
