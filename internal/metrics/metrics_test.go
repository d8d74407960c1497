// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCatalogBuild(t *testing.T) {
	RecordCatalogBuild(2*time.Second, 120, 4500, 4*120*120)

	if got := testutil.ToFloat64(CatalogMovies); got != 120 {
		t.Errorf("CatalogMovies = %f, want 120", got)
	}
	if got := testutil.ToFloat64(CatalogVocabularySize); got != 4500 {
		t.Errorf("CatalogVocabularySize = %f, want 4500", got)
	}
	if got := testutil.ToFloat64(CatalogSimilarityBytes); got != 57600 {
		t.Errorf("CatalogSimilarityBytes = %f, want 57600", got)
	}
}

func TestRecordResolve(t *testing.T) {
	tests := []struct {
		name    string
		matched bool
		cached  bool
		outcome string
	}{
		{"fresh match", true, false, ResolveMatch},
		{"cached match", true, true, ResolveMatch},
		{"fresh no match", false, false, ResolveNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ResolveTotal.WithLabelValues(tt.outcome))
			hits := testutil.ToFloat64(ResolveCacheHits)
			misses := testutil.ToFloat64(ResolveCacheMisses)

			RecordResolve(tt.matched, tt.cached)

			if got := testutil.ToFloat64(ResolveTotal.WithLabelValues(tt.outcome)); got != before+1 {
				t.Errorf("ResolveTotal[%s] = %f, want %f", tt.outcome, got, before+1)
			}
			wantHits, wantMisses := hits, misses+1
			if tt.cached {
				wantHits, wantMisses = hits+1, misses
			}
			if got := testutil.ToFloat64(ResolveCacheHits); got != wantHits {
				t.Errorf("ResolveCacheHits = %f, want %f", got, wantHits)
			}
			if got := testutil.ToFloat64(ResolveCacheMisses); got != wantMisses {
				t.Errorf("ResolveCacheMisses = %f, want %f", got, wantMisses)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommend", "200"))
	RecordAPIRequest("POST", "/api/v1/recommend", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommend", "200")); got != before+1 {
		t.Errorf("APIRequestsTotal = %f, want %f", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %f, want %f", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %f, want %f", got, before)
	}
}

func TestRecordTMDBRequest(t *testing.T) {
	before := testutil.ToFloat64(TMDBRequestsTotal.WithLabelValues("popular", "failure"))
	RecordTMDBRequest("popular", "failure")
	if got := testutil.ToFloat64(TMDBRequestsTotal.WithLabelValues("popular", "failure")); got != before+1 {
		t.Errorf("TMDBRequestsTotal = %f, want %f", got, before+1)
	}
}
