// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"slices"
	"time"
)

// Snapshot column names shared by every loader and by the snapshot writer.
const (
	ColumnID          = "id"
	ColumnTitle       = "title"
	ColumnReleaseDate = "release_date"
	ColumnOverview    = "overview"
	ColumnVoteAverage = "vote_average"
	ColumnVoteCount   = "vote_count"
	ColumnPopularity  = "popularity"
	ColumnDirector    = "director"
	ColumnCast        = "cast"
	ColumnGenres      = "genres"
	ColumnPosterURL   = "poster_url"
)

// Columns lists the snapshot columns in the order the snapshot writer emits them.
var Columns = []string{
	ColumnID,
	ColumnTitle,
	ColumnReleaseDate,
	ColumnOverview,
	ColumnVoteAverage,
	ColumnVoteCount,
	ColumnPopularity,
	ColumnDirector,
	ColumnCast,
	ColumnGenres,
	ColumnPosterURL,
}

// RequiredColumns must be present in every snapshot.
var RequiredColumns = []string{ColumnTitle, ColumnVoteAverage, ColumnVoteCount}

// RawMovie is one unparsed snapshot row. List fields (genres, director, cast)
// are comma-joined text as stored in the snapshot.
type RawMovie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	VoteAverage string `json:"vote_average"`
	VoteCount   string `json:"vote_count"`
	Popularity  string `json:"popularity"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Genres      string `json:"genres"`
	PosterURL   string `json:"poster_url"`
}

// Set assigns a field by snapshot column name. Unknown columns are ignored.
func (r *RawMovie) Set(column, value string) {
	switch column {
	case ColumnID:
		r.ID = value
	case ColumnTitle:
		r.Title = value
	case ColumnReleaseDate:
		r.ReleaseDate = value
	case ColumnOverview:
		r.Overview = value
	case ColumnVoteAverage:
		r.VoteAverage = value
	case ColumnVoteCount:
		r.VoteCount = value
	case ColumnPopularity:
		r.Popularity = value
	case ColumnDirector:
		r.Director = value
	case ColumnCast:
		r.Cast = value
	case ColumnGenres:
		r.Genres = value
	case ColumnPosterURL:
		r.PosterURL = value
	}
}

// Movie is a validated catalog entry with its derived features.
type Movie struct {
	// ID is the upstream identifier (TMDB id for fetched snapshots).
	ID string `json:"id"`

	Title    string `json:"title"`
	Overview string `json:"overview"`

	// Genres, Directors and Cast keep snapshot order.
	Genres    []string `json:"genres"`
	Directors []string `json:"directors"`
	Cast      []string `json:"cast"`

	// ReleaseDate is nil when the snapshot value is empty or unparseable.
	ReleaseDate *time.Time `json:"release_date,omitempty"`

	VoteAverage float64 `json:"vote_average"`
	VoteCount   float64 `json:"vote_count"`
	Popularity  float64 `json:"popularity"`

	// PosterURL is empty when the snapshot has no poster.
	PosterURL string `json:"poster_url,omitempty"`

	Features Features `json:"features"`
}

// Clone returns a copy of m that shares no memory with it.
func (m *Movie) Clone() Movie {
	c := *m
	c.Genres = slices.Clone(m.Genres)
	c.Directors = slices.Clone(m.Directors)
	c.Cast = slices.Clone(m.Cast)
	if m.ReleaseDate != nil {
		d := *m.ReleaseDate
		c.ReleaseDate = &d
	}
	if m.Features.DaysSinceRelease != nil {
		days := *m.Features.DaysSinceRelease
		c.Features.DaysSinceRelease = &days
	}
	return c
}

// Features are computed once per build and never change afterwards.
type Features struct {
	WeightedRating float64 `json:"weighted_rating"`

	// DaysSinceRelease is nil when ReleaseDate is nil.
	DaysSinceRelease *int `json:"days_since_release,omitempty"`

	NormalizedPopularity float64 `json:"normalized_popularity"`
	NormalizedRating     float64 `json:"normalized_rating"`

	// CombinedText is the vectorizer input; it is not meant for display.
	CombinedText string `json:"-"`
}

// Catalog is the built, immutable set of movies.
type Catalog struct {
	Movies []Movie

	// MeanVote is C in the weighted rating formula.
	MeanVote float64

	// VoteQuantile is m in the weighted rating formula (90th-percentile vote count).
	VoteQuantile float64

	BuiltAt time.Time
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.Movies)
}

// Titles returns the movie titles in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.Movies))
	for i := range c.Movies {
		titles[i] = c.Movies[i].Title
	}
	return titles
}

// CombinedTexts returns the vectorizer input for every movie in catalog order.
func (c *Catalog) CombinedTexts() []string {
	docs := make([]string, len(c.Movies))
	for i := range c.Movies {
		docs[i] = c.Movies[i].Features.CombinedText
	}
	return docs
}
