// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"bytes"
	"context"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	if id := newCorrelationID(); len(id) != 8 {
		t.Errorf("correlation ID %q has length %d, want 8", id, len(id))
	}
	a, b := GenerateRequestID(), GenerateRequestID()
	if len(a) != 36 || a == b {
		t.Errorf("request IDs %q, %q not unique UUIDs", a, b)
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || CorrelationIDFromContext(ctx) != "" {
		t.Fatal("empty context should carry no IDs")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q", got)
	}
	if got := CorrelationIDFromContext(ctx); got != "corr-1" {
		t.Errorf("CorrelationIDFromContext = %q", got)
	}

	if got := CorrelationIDFromContext(ContextWithNewCorrelationID(context.Background())); len(got) != 8 {
		t.Errorf("generated correlation ID = %q", got)
	}
}

func TestCtx_AttachesIDs(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-42")
	ctx = ContextWithCorrelationID(ctx, "abcd1234")

	Ctx(ctx).Info().Msg("served")

	m := decodeLine(t, bytes.TrimSpace(buf.Bytes()))
	if m["request_id"] != "req-42" || m["correlation_id"] != "abcd1234" {
		t.Errorf("IDs not attached: %v", m)
	}
}

func TestLoggerFromContext_FallsBackToGlobal(t *testing.T) {
	buf := captureGlobal(t, "info")

	l := LoggerFromContext(context.Background())
	l.Info().Msg("global")

	if !bytes.Contains(buf.Bytes(), []byte("global")) {
		t.Errorf("expected global logger output, got %q", buf.String())
	}
}
