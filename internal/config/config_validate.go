// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration and returns the first violation found.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return err
	}
	if err := c.Catalog.validate(); err != nil {
		return err
	}
	if err := c.Recommend.Engine().Validate(); err != nil {
		return err
	}
	if c.Recommend.CacheSweepInterval <= 0 {
		return fmt.Errorf("recommend.cache_sweep_interval must be positive, got %v", c.Recommend.CacheSweepInterval)
	}
	if err := c.Security.validate(); err != nil {
		return err
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return c.TMDB.validate()
}

func (s *ServerConfig) validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", s.Timeout)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", s.ShutdownTimeout)
	}
	switch s.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server.environment must be development or production, got %q", s.Environment)
	}
	return nil
}

func (c *CatalogConfig) validate() error {
	switch c.Source {
	case SourceCSV:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("catalog.path is required for the csv source")
		}
	case SourceDuckDB:
		if c.Path == "" && c.DuckDBPath == "" {
			return fmt.Errorf("catalog.duckdb_path or catalog.path is required for the duckdb source")
		}
		if c.Table == "" {
			return fmt.Errorf("catalog.table is required for the duckdb source")
		}
	default:
		return fmt.Errorf("catalog.source must be %s or %s, got %q", SourceCSV, SourceDuckDB, c.Source)
	}
	return nil
}

func (s *SecurityConfig) validate() error {
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", s.RateLimitReqs)
		}
		if s.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %v", s.RateLimitWindow)
		}
	}
	if len(s.CORSOrigins) == 0 {
		return fmt.Errorf("security.cors_origins must list at least one origin")
	}
	if s.MaxBodyBytes < 1 {
		return fmt.Errorf("security.max_body_bytes must be positive, got %d", s.MaxBodyBytes)
	}
	return nil
}

func (l *LoggingConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error; got %q", l.Level)
	}
	switch l.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", l.Format)
	}
	return nil
}

// validate checks fields needed by any TMDB client. The API key is checked by
// cmd/snapshot, since the server never calls TMDB.
func (t *TMDBConfig) validate() error {
	for name, raw := range map[string]string{"tmdb.base_url": t.BaseURL, "tmdb.image_base_url": t.ImageBaseURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if t.Pages < 1 {
		return fmt.Errorf("tmdb.pages must be positive, got %d", t.Pages)
	}
	if t.RequestsPerSecond <= 0 {
		return fmt.Errorf("tmdb.requests_per_second must be positive, got %v", t.RequestsPerSecond)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive, got %v", t.Timeout)
	}
	return nil
}

// RequireAPIKey reports a missing TMDB key.
func (t *TMDBConfig) RequireAPIKey() error {
	if strings.TrimSpace(t.APIKey) == "" {
		return fmt.Errorf("tmdb.api_key is required (set TMDB_API_KEY)")
	}
	return nil
}
