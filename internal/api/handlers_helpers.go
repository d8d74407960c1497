// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/middleware"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// maxLoggedValue bounds client-controlled strings written to logs.
const maxLoggedValue = 200

// respondJSON sends a JSON response with proper headers. A Cache-Control
// header already set by the handler is kept.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	if w.Header().Get("Cache-Control") == "" {
		if status >= http.StatusBadRequest {
			w.Header().Set("Cache-Control", "no-store")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=60")
		}
	}

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope timed from start.
func respondSuccess(w http.ResponseWriter, r *http.Request, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   middleware.GetRequestID(r.Context()),
		},
	})
}

// respondError sends an error response. err, when non-nil, is logged and
// never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", apiErr.Code).
			Int("status", status).
			Str("error", logging.SanitizeValue(err.Error(), maxLoggedValue)).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
		Error: apiErr,
	})
}

// respondEngineError maps recommendation errors onto HTTP statuses.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var anchorErr *recommend.InvalidAnchorError
	switch {
	case errors.Is(err, recommend.ErrNoMatch):
		respondError(w, r, http.StatusNotFound, models.CodeNoMatch, "No movie title matched the query", nil)
	case errors.As(err, &anchorErr):
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    models.CodeInvalidAnchor,
			Message: "Movie index is outside the catalog",
			Details: map[string]interface{}{"index": anchorErr.Index, "size": anchorErr.Size},
		}, nil)
	case errors.Is(err, recommend.ErrInvalidCount):
		respondError(w, r, http.StatusBadRequest, models.CodeValidation, "n must be at least 1", nil)
	default:
		respondError(w, r, http.StatusInternalServerError, models.CodeInternal, "Failed to generate recommendations", err)
	}
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeJSONBody decodes a single JSON object from the request body,
// rejecting unknown fields and trailing data.
func decodeJSONBody(r *http.Request, dst interface{}) *models.APIError {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &models.APIError{
				Code:    models.CodeValidation,
				Message: fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit),
			}
		case errors.Is(err, io.EOF):
			return &models.APIError{Code: models.CodeValidation, Message: "Request body is empty"}
		default:
			return &models.APIError{
				Code:    models.CodeValidation,
				Message: "Invalid JSON body",
				Details: map[string]interface{}{"error": logging.SanitizeValue(err.Error(), maxLoggedValue)},
			}
		}
	}
	if dec.More() {
		return &models.APIError{Code: models.CodeValidation, Message: "Request body must hold a single JSON object"}
	}
	return nil
}

// getIntParam parses an optional integer query parameter. A missing
// parameter yields def; a malformed one is a validation error.
func getIntParam(r *http.Request, key string, def int) (int, *models.APIError) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &models.APIError{
			Code:    models.CodeValidation,
			Message: fmt.Sprintf("%s must be an integer", key),
			Details: map[string]interface{}{"field": key, "value": logging.SanitizeValue(value, 32)},
		}
	}
	return n, nil
}
