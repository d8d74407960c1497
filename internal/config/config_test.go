// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolate points config discovery at an empty directory so a developer's
// config.yaml cannot leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Catalog.Source != SourceCSV {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Recommend.MatchThreshold != 80 || cfg.Recommend.MaxCatalogSize != 10000 {
		t.Errorf("recommend defaults = %+v", cfg.Recommend)
	}
	if cfg.TMDB.Pages != 300 || cfg.TMDB.RequestsPerSecond != 4 {
		t.Errorf("tmdb defaults = %+v", cfg.TMDB)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CATALOG_PATH", "/srv/movies.csv")
	t.Setenv("MATCH_THRESHOLD", "70")
	t.Setenv("RECOMMEND_CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("TMDB_API_KEY", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/srv/movies.csv" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Recommend.MatchThreshold != 70 || cfg.Recommend.CacheTTL != 30*time.Second {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.TMDB.APIKey != "secret" || cfg.TMDB.RequireAPIKey() != nil {
		t.Errorf("TMDB.APIKey = %q", cfg.TMDB.APIKey)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	yaml := `
server:
  port: 7000
catalog:
  source: duckdb
  duckdb_path: /data/movies.duckdb
  table: films
recommend:
  max_results: 20
security:
  cors_origins:
    - https://cinematch.example
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// env beats file
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Port = %d, want env override 7001", cfg.Server.Port)
	}
	if cfg.Catalog.Source != SourceDuckDB || cfg.Catalog.Table != "films" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Recommend.MaxResults != 20 || cfg.Recommend.DefaultResults != 5 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://cinematch.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG_SOURCE", "parquet")

	if _, err := Load(); err == nil {
		t.Error("expected validation error for unknown catalog source")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, true},
		{"csv without path", func(c *Config) { c.Catalog.Path = " " }, true},
		{"duckdb in memory from csv", func(c *Config) { c.Catalog.Source = SourceDuckDB }, false},
		{"duckdb without table", func(c *Config) { c.Catalog.Source = SourceDuckDB; c.Catalog.Table = "" }, true},
		{"threshold out of range", func(c *Config) { c.Recommend.MatchThreshold = 120 }, true},
		{"zero sweep interval", func(c *Config) { c.Recommend.CacheSweepInterval = 0 }, true},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"zero rate limit when disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, false},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"relative tmdb url", func(c *Config) { c.TMDB.BaseURL = "/api" }, true},
		{"zero tmdb rate", func(c *Config) { c.TMDB.RequestsPerSecond = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := defaultConfig()
	if cfg.TMDB.RequireAPIKey() == nil {
		t.Error("missing key should fail")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"HTTP_PORT":    "server.port",
		"TMDB_API_KEY": "tmdb.api_key",
		"duckdb_path":  "catalog.duckdb_path",
		"PATH":         "",
		"HOME":         "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecommendConfig_Engine(t *testing.T) {
	cfg := defaultConfig()
	eng := cfg.Recommend.Engine()
	if eng.MatchThreshold != 80 || eng.MaxFeatures != 5000 || eng.CacheTTL != 10*time.Minute {
		t.Errorf("Engine() = %+v", eng)
	}
	if err := eng.Validate(); err != nil {
		t.Errorf("Engine().Validate() = %v", err)
	}
}
