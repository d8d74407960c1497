// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

func testMovies() []catalog.RawMovie {
	return []catalog.RawMovie{
		{
			ID: "1", Title: "Heat Wave", Genres: "Action, Comedy",
			Overview: "A heist crew plans one last job in the city.",
			Director: "Michael Mann", Cast: "Al Pacino, Robert De Niro",
			VoteAverage: "8.0", VoteCount: "1000", Popularity: "50",
			ReleaseDate: "1995-12-15", PosterURL: "https://image.tmdb.org/t/p/w500/heat.jpg",
		},
		{
			ID: "2", Title: "Desert Run", Genres: "Action",
			Overview: "A heist crew plans one last job in the desert.",
			Director: "Michael Mann", Cast: "Keanu Reeves",
			VoteAverage: "9.0", VoteCount: "10", Popularity: "20",
		},
		{
			ID: "3", Title: "Quiet Rooms", Genres: "Drama",
			Overview: "A heist crew plans one last job in the city.",
			Director: "Sofia Coppola", Cast: "Al Pacino, Robert De Niro",
			VoteAverage: "6.0", VoteCount: "500", Popularity: "80",
		},
	}
}

// setupTestHandler builds a real index over testMovies.
func setupTestHandler(t *testing.T) *Handler {
	t.Helper()
	idx, err := recommend.Build(context.Background(), testMovies(), recommend.DefaultConfig(), zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("recommend.Build() error = %v", err)
	}
	return NewHandler(idx, "test")
}

// setupTestServer serves the full router with rate limiting disabled.
func setupTestServer(t *testing.T, h *Handler) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(h, NewChiMiddleware(cfg)).SetupChi()
}

// failingEngine wraps a real engine and fails every ranking call.
type failingEngine struct {
	Recommender
}

var errBoom = errors.New("boom")

func (failingEngine) Rank(int, int) ([]recommend.RecommendationView, error) {
	return nil, errBoom
}

func (failingEngine) Recommend(string, int) ([]recommend.RecommendationView, recommend.Match, error) {
	return nil, recommend.Match{}, errBoom
}

// envelope mirrors models.APIResponse with a raw payload for decoding.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, target string, body []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); ct == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}
