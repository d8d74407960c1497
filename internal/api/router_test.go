// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

func TestRouter_Health(t *testing.T) {
	srv := setupTestServer(t, setupTestHandler(t))

	rec, env := doRequest(t, srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "no-cache" {
		t.Errorf("Cache-Control = %q, want no-cache", rec.Header().Get("Cache-Control"))
	}

	var data models.HealthResponse
	decodeData(t, env, &data)
	if data.Status != "healthy" || data.Version != "test" {
		t.Errorf("health = %+v", data)
	}
	if data.Catalog.Movies != 3 || data.Catalog.VocabularySize == 0 {
		t.Errorf("catalog stats = %+v", data.Catalog)
	}
	if data.Catalog.BuiltAt.IsZero() {
		t.Error("built_at not set")
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	srv := setupTestServer(t, setupTestHandler(t))

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/v1/recommend", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, srv, tt.method, tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env.Status != "error" || env.Error == nil {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	srv := setupTestServer(t, setupTestHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	for header, want := range map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	srv := NewRouter(setupTestHandler(t), NewChiMiddleware(cfg)).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommend", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/recommend", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	srv := NewRouter(setupTestHandler(t), NewChiMiddleware(cfg)).SetupChi()

	for i := 0; i < 2; i++ {
		rec, _ := doRequest(t, srv, http.MethodGet, "/api/v1/health", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}

	rec, env := doRequest(t, srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != models.CodeRateLimited {
		t.Errorf("envelope = %+v", env)
	}
}

func TestRouter_Metrics(t *testing.T) {
	srv := setupTestServer(t, setupTestHandler(t))

	doRequest(t, srv, http.MethodGet, "/api/v1/movies/0/similar", nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`api_requests_total{endpoint="/api/v1/movies/{index}/similar",method="GET",status_code="200"}`,
		"catalog_movies 3",
		"rank_duration_seconds_bucket",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNewChiMiddlewareFromConfig_DefaultsBodyCap(t *testing.T) {
	m := NewChiMiddleware(nil)
	if m.MaxBodyBytes() != 64<<10 {
		t.Errorf("MaxBodyBytes() = %d", m.MaxBodyBytes())
	}
}
