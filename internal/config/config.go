// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads service configuration with koanf.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. Struct defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, then config.yaml / config.yml)
//  3. Environment variables mapped through envTransformFunc
//
// Comma-separated environment values are split for slice fields such as
// security.cors_origins. The result is validated before it is returned.
package config

import (
	"time"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment: "development" or "production" (default: "development")
	Environment string `koanf:"environment"`
}

// Catalog source kinds.
const (
	SourceCSV    = "csv"
	SourceDuckDB = "duckdb"
)

// CatalogConfig says where the movie snapshot lives.
type CatalogConfig struct {
	// Path is the CSV snapshot written by cmd/snapshot.
	// Default: data/movies.csv
	Path string `koanf:"path"`

	// Source selects the loader: csv reads Path directly, duckdb imports
	// Path into DuckDBPath (when Path is set) and reads Table back.
	Source string `koanf:"source"`

	// DuckDBPath is the database file. Empty means in-memory.
	DuckDBPath string `koanf:"duckdb_path"`

	// Table is the DuckDB table holding the snapshot.
	// Default: movies
	Table string `koanf:"table"`
}

// RecommendConfig mirrors recommend.Config with koanf tags.
type RecommendConfig struct {
	MatchThreshold int           `koanf:"match_threshold"`
	DefaultResults int           `koanf:"default_results"`
	MaxResults     int           `koanf:"max_results"`
	MoodResults    int           `koanf:"mood_results"`
	MaxCatalogSize int           `koanf:"max_catalog_size"`
	MaxFeatures    int           `koanf:"max_features"`
	Stem           bool          `koanf:"stem"`
	Workers        int           `koanf:"workers"`
	CacheSize      int           `koanf:"cache_size"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`

	// CacheSweepInterval is how often expired resolver entries are dropped.
	CacheSweepInterval time.Duration `koanf:"cache_sweep_interval"`
}

// Engine converts to the recommend package configuration.
func (r *RecommendConfig) Engine() recommend.Config {
	return recommend.Config{
		MatchThreshold: r.MatchThreshold,
		DefaultResults: r.DefaultResults,
		MaxResults:     r.MaxResults,
		MoodResults:    r.MoodResults,
		MaxCatalogSize: r.MaxCatalogSize,
		MaxFeatures:    r.MaxFeatures,
		Stem:           r.Stem,
		Workers:        r.Workers,
		CacheSize:      r.CacheSize,
		CacheTTL:       r.CacheTTL,
	}
}

// SecurityConfig holds inbound request controls.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// TMDBConfig configures the snapshot fetcher.
//
// Environment Variables:
//   - TMDB_API_KEY: API key (required by cmd/snapshot)
//   - TMDB_PAGES: popular-list pages to fetch (default: 300)
//   - TMDB_REQUESTS_PER_SECOND: outbound request rate (default: 4)
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	Language          string        `koanf:"language"`
	Pages             int           `koanf:"pages"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Timeout           time.Duration `koanf:"timeout"`

	// OutputPath is where cmd/snapshot writes the CSV.
	OutputPath string `koanf:"output_path"`
}
