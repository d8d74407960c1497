// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package services wraps long-running components as suture services.
package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// APIServer is the part of *http.Server the service drives.
type APIServer interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// APIServerService serves the query API under a supervisor.
//
// The listener is bound inside Serve, so a port conflict is reported to the
// supervisor like any other failure and retried with backoff. On context
// cancellation in-flight requests get shutdownTimeout to finish.
//
//	server := &http.Server{Handler: router}
//	tree.AddAPIService(services.NewAPIServerService(server, ":8080", 10*time.Second, logger))
type APIServerService struct {
	server          APIServer
	addr            string
	shutdownTimeout time.Duration
	logger          zerolog.Logger

	mu    sync.Mutex
	bound net.Addr
}

// NewAPIServerService wraps server listening on addr. A non-positive
// shutdownTimeout means 10s.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAPIServerService(server APIServer, addr string, shutdownTimeout time.Duration, logger zerolog.Logger) *APIServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &APIServerService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("service", "api-server").Logger(),
	}
}

// Addr returns the address of the current listener, or nil before the
// first successful bind.
func (s *APIServerService) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Serve implements suture.Service.
func (s *APIServerService) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.bound = ln.Addr()
	s.mu.Unlock()
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("api server listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)

	case <-ctx.Done():
		// ctx is already canceled, so shutdown gets its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown: %w", err)
		}
		<-errCh
		s.logger.Info().Msg("api server stopped")
		return ctx.Err()
	}
}

// String names the service in supervisor events.
func (s *APIServerService) String() string {
	return "api-server"
}
