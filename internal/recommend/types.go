// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// ErrNoMatch is returned by Recommend when the query resolves to no title.
// Resolve itself reports a miss through its boolean result.
var ErrNoMatch = errors.New("no title matched the query")

// ErrInvalidAnchor is the sentinel matched by *InvalidAnchorError.
var ErrInvalidAnchor = errors.New("invalid anchor index")

// ErrInvalidCount is returned when fewer than one result is requested.
var ErrInvalidCount = errors.New("result count must be at least 1")

// ErrCatalogTooLarge is returned by Build when the snapshot exceeds
// Config.MaxCatalogSize. It matches catalog.ErrDataLoad.
var ErrCatalogTooLarge = fmt.Errorf("%w: catalog exceeds maximum size", catalog.ErrDataLoad)

// InvalidAnchorError reports an anchor index outside the catalog.
type InvalidAnchorError struct {
	Index int
	Size  int
}

// Error implements the error interface.
func (e *InvalidAnchorError) Error() string {
	return fmt.Sprintf("anchor index %d out of range [0, %d)", e.Index, e.Size)
}

// Is matches ErrInvalidAnchor.
func (e *InvalidAnchorError) Is(target error) bool {
	return target == ErrInvalidAnchor
}

// Match is a resolved title.
type Match struct {
	// Index is the catalog position of the matched movie.
	Index int    `json:"index"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

// RecommendationView is the presentation projection of a ranked movie.
type RecommendationView struct {
	Index    int    `json:"index"`
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Genres   string `json:"genres"`
	Director string `json:"director"`
	Cast     string `json:"cast"`

	// ReleaseDate is YYYY-MM-DD or "N/A".
	ReleaseDate string `json:"release_date"`

	// Rating is the vote average rounded to one decimal, halves to even.
	Rating float64 `json:"rating"`

	Overview  string `json:"overview"`
	PosterURL string `json:"poster_url"`

	// Score is the final ranking score. Zero for mood picks.
	Score float64 `json:"score,omitempty"`
}

// UnknownReleaseDate is shown for movies without a parseable release date.
const UnknownReleaseDate = "N/A"

// NewView projects a catalog movie. Lists are joined for display here and
// nowhere earlier.
func NewView(index int, m *catalog.Movie, score float64) RecommendationView {
	date := UnknownReleaseDate
	if m.ReleaseDate != nil {
		date = m.ReleaseDate.Format(time.DateOnly)
	}
	return RecommendationView{
		Index:       index,
		ID:          m.ID,
		Title:       m.Title,
		Genres:      catalog.JoinList(m.Genres),
		Director:    catalog.JoinList(m.Directors),
		Cast:        catalog.JoinList(m.Cast),
		ReleaseDate: date,
		Rating:      math.RoundToEven(m.VoteAverage*10) / 10,
		Overview:    m.Overview,
		PosterURL:   m.PosterURL,
		Score:       score,
	}
}

// Stats summarizes a built index.
type Stats struct {
	Movies           int       `json:"movies"`
	VocabularySize   int       `json:"vocabulary_size"`
	SimilarityBytes  int       `json:"similarity_bytes"`
	MeanVote         float64   `json:"mean_vote"`
	VoteQuantile     float64   `json:"vote_quantile"`
	BuiltAt          time.Time `json:"built_at"`
	BuildDuration    string    `json:"build_duration"`
	ResolveCacheSize int       `json:"resolve_cache_size"`
}
