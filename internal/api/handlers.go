// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Recommender is the query surface of an indexed catalog.
// *recommend.IndexedCatalog satisfies it.
type Recommender interface {
	Config() recommend.Config
	Len() int
	Movie(i int) (catalog.Movie, error)
	Resolve(query string) (recommend.Match, bool)
	Rank(anchor, n int) ([]recommend.RecommendationView, error)
	Recommend(query string, n int) ([]recommend.RecommendationView, recommend.Match, error)
	MoodPicks(emotion string, n int) ([]recommend.RecommendationView, error)
	Stats() recommend.Stats
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope and parameter helpers
//   - handlers_health.go: health endpoint
//   - handlers_recommend.go: recommendation, resolution and mood endpoints
type Handler struct {
	engine    Recommender
	version   string
	startTime time.Time
}

// NewHandler creates an API handler serving engine.
func NewHandler(engine Recommender, version string) *Handler {
	return &Handler{
		engine:    engine,
		version:   version,
		startTime: time.Now(),
	}
}
