// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Recommend handles POST /api/v1/recommend.
// Resolves the title and ranks the movies most similar to the match.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	cfg := h.engine.Config()
	n := cfg.ClampResults(req.N, cfg.DefaultResults)

	views, match, err := h.engine.Recommend(req.Title, n)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("query", logging.SanitizeValue(req.Title, maxLoggedValue)).
		Int("anchor", match.Index).
		Int("score", match.Score).
		Int("results", len(views)).
		Msg("recommendations served")

	respondSuccess(w, r, start, models.RecommendResponse{
		Query:           req.Title,
		Match:           match,
		Recommendations: views,
	})
}

// Resolve handles GET /api/v1/movies/resolve?q=.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := models.ResolveRequest{Q: r.URL.Query().Get("q")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	match, ok := h.engine.Resolve(req.Q)
	if !ok {
		respondEngineError(w, r, recommend.ErrNoMatch)
		return
	}

	respondSuccess(w, r, start, models.ResolveResponse{Query: req.Q, Match: match})
}

// Similar handles GET /api/v1/movies/{index}/similar?n=.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.CodeInvalidAnchor, "Movie index must be an integer", nil)
		return
	}

	n, apiErr := getIntParam(r, "n", 0)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	req := models.ListRequest{N: n}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	movie, err := h.engine.Movie(index)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	cfg := h.engine.Config()
	views, err := h.engine.Rank(index, cfg.ClampResults(req.N, cfg.DefaultResults))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, start, models.SimilarResponse{
		Anchor:          recommend.NewView(index, &movie, 0),
		Recommendations: views,
	})
}

// Moods handles GET /api/v1/moods.
func (h *Handler) Moods(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	moods := recommend.Moods()
	infos := make([]models.MoodInfo, len(moods))
	for i, m := range moods {
		infos[i] = models.MoodInfo{Emotion: m, Genres: recommend.MoodGenres(m)}
	}

	respondSuccess(w, r, start, infos)
}

// MoodMovies handles GET /api/v1/moods/{emotion}/movies?n=.
// Unknown emotions fall back to the default genre list.
func (h *Handler) MoodMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, apiErr := getIntParam(r, "n", 0)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	req := models.MoodRequest{Emotion: chi.URLParam(r, "emotion"), N: n}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	cfg := h.engine.Config()
	movies, err := h.engine.MoodPicks(req.Emotion, cfg.ClampResults(req.N, cfg.MoodResults))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, start, models.MoodResponse{
		Emotion: strings.ToLower(strings.TrimSpace(req.Emotion)),
		Genres:  recommend.MoodGenres(req.Emotion),
		Movies:  movies,
	})
}
