// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"time"
)

// Ranking constants. These define result semantics and are not configurable.
const (
	// RelevanceFloor excludes candidates whose cosine similarity is <= this value.
	RelevanceFloor = 0.1

	// GenreBonusWeight scales the genre Jaccard index added to the similarity.
	GenreBonusWeight = 0.2
)

// Config contains the tunable parameters of an IndexedCatalog.
type Config struct {
	// MatchThreshold is the minimum fuzzy score (0-100) for a title match.
	// Default: 80.
	MatchThreshold int `json:"match_threshold"`

	// DefaultResults is used when a caller does not ask for a count.
	// Default: 5.
	DefaultResults int `json:"default_results"`

	// MaxResults caps the count a caller may ask for.
	// Default: 50.
	MaxResults int `json:"max_results"`

	// MoodResults is the default count for mood picks.
	// Default: 10.
	MoodResults int `json:"mood_results"`

	// MaxCatalogSize bounds the quadratic similarity matrix.
	// Default: 10000 (about 800 MB of float64).
	MaxCatalogSize int `json:"max_catalog_size"`

	// MaxFeatures caps the TF-IDF vocabulary.
	// Default: 5000.
	MaxFeatures int `json:"max_features"`

	// Stem enables Porter stemming in the text analyzer.
	// Default: false.
	Stem bool `json:"stem"`

	// Workers bounds the goroutines used for the similarity build.
	// Zero means GOMAXPROCS.
	Workers int `json:"workers"`

	// CacheSize is the number of memoized resolver results.
	// Default: 10000.
	CacheSize int `json:"cache_size"`

	// CacheTTL bounds how long a resolver result is kept.
	// Default: 10m.
	CacheTTL time.Duration `json:"cache_ttl"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		MatchThreshold: 80,
		DefaultResults: 5,
		MaxResults:     50,
		MoodResults:    10,
		MaxCatalogSize: 10000,
		MaxFeatures:    5000,
		CacheSize:      10000,
		CacheTTL:       10 * time.Minute,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // value receiver keeps Config copyable
func (c Config) Validate() error {
	if c.MatchThreshold < 0 || c.MatchThreshold > 100 {
		return fmt.Errorf("recommend.match_threshold must be in [0, 100], got %d", c.MatchThreshold)
	}
	if c.DefaultResults < 1 {
		return fmt.Errorf("recommend.default_results must be positive, got %d", c.DefaultResults)
	}
	if c.MaxResults < c.DefaultResults {
		return fmt.Errorf("recommend.max_results must be >= recommend.default_results, got %d < %d", c.MaxResults, c.DefaultResults)
	}
	if c.MoodResults < 1 || c.MoodResults > c.MaxResults {
		return fmt.Errorf("recommend.mood_results must be in [1, max_results], got %d", c.MoodResults)
	}
	if c.MaxCatalogSize < 1 {
		return fmt.Errorf("recommend.max_catalog_size must be positive, got %d", c.MaxCatalogSize)
	}
	if c.MaxFeatures < 0 {
		return fmt.Errorf("recommend.max_features must be non-negative, got %d", c.MaxFeatures)
	}
	if c.Workers < 0 {
		return fmt.Errorf("recommend.workers must be non-negative, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("recommend.cache_size must be non-negative, got %d", c.CacheSize)
	}
	return nil
}

// ClampResults maps a requested count to [1, MaxResults], using def when
// n is not positive.
//
//nolint:gocritic // value receiver keeps Config copyable
func (c Config) ClampResults(n, def int) int {
	if n <= 0 {
		n = def
	}
	if n > c.MaxResults {
		n = c.MaxResults
	}
	return n
}
