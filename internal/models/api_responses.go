// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package models defines the JSON shapes exchanged over the HTTP API.
package models

import (
	"time"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// APIResponse is the envelope used by every HTTP endpoint.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"query": "heat", "match": {...}, "recommendations": [...]},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 2}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "NO_MATCH", "message": "No movie title matched the query"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable code plus a human-readable message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned in APIError.Code.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNoMatch       = "NO_MATCH"
	CodeInvalidAnchor = "INVALID_ANCHOR"
	CodeNotFound      = "NOT_FOUND"
	CodeRateLimited   = "RATE_LIMIT_EXCEEDED"
	CodeInternal      = "INTERNAL_ERROR"
	CodeUnavailable   = "SERVICE_UNAVAILABLE"
)

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	Title string `json:"title" validate:"notblank,max=200,printable"`

	// N defaults to the configured result count when zero.
	N int `json:"n" validate:"omitempty,min=1"`
}

// ResolveRequest holds the query string of GET /api/v1/movies/resolve.
type ResolveRequest struct {
	Q string `query:"q" validate:"notblank,max=200,printable"`
}

// ListRequest holds the optional result count of list endpoints.
type ListRequest struct {
	N int `query:"n" validate:"omitempty,min=1"`
}

// MoodRequest holds the parameters of GET /api/v1/moods/{emotion}/movies.
type MoodRequest struct {
	Emotion string `query:"emotion" validate:"notblank,max=64,printable"`
	N       int    `query:"n" validate:"omitempty,min=1"`
}

// RecommendResponse is returned by POST /api/v1/recommend.
type RecommendResponse struct {
	Query           string                         `json:"query"`
	Match           recommend.Match                `json:"match"`
	Recommendations []recommend.RecommendationView `json:"recommendations"`
}

// ResolveResponse is returned by GET /api/v1/movies/resolve.
type ResolveResponse struct {
	Query string          `json:"query"`
	Match recommend.Match `json:"match"`
}

// SimilarResponse is returned by GET /api/v1/movies/{index}/similar.
type SimilarResponse struct {
	Anchor          recommend.RecommendationView   `json:"anchor"`
	Recommendations []recommend.RecommendationView `json:"recommendations"`
}

// MoodResponse is returned by GET /api/v1/moods/{emotion}/movies.
type MoodResponse struct {
	Emotion string                         `json:"emotion"`
	Genres  []string                       `json:"genres"`
	Movies  []recommend.RecommendationView `json:"movies"`
}

// MoodInfo pairs an emotion with its genres.
type MoodInfo struct {
	Emotion string   `json:"emotion"`
	Genres  []string `json:"genres"`
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status  string          `json:"status"`
	Version string          `json:"version"`
	Uptime  string          `json:"uptime"`
	Catalog recommend.Stats `json:"catalog"`
}
