// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheSweeper drops expired entries and reports what is left.
// *recommend.IndexedCatalog satisfies it.
type CacheSweeper interface {
	SweepCache() (removed, size int)
}

// CacheSweepService periodically sweeps the resolver cache so expired
// entries do not hold memory until they are next looked up.
type CacheSweepService struct {
	sweeper  CacheSweeper
	interval time.Duration
	report   func(size int)
	logger   zerolog.Logger
	name     string
}

// NewCacheSweepService creates the service. report receives the cache size
// after every sweep and may be nil. A non-positive interval means 1m.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheSweepService(sweeper CacheSweeper, interval time.Duration, report func(size int), logger zerolog.Logger) *CacheSweepService {
	if interval <= 0 {
		interval = time.Minute
	}
	if report == nil {
		report = func(int) {}
	}
	return &CacheSweepService{
		sweeper:  sweeper,
		interval: interval,
		report:   report,
		logger:   logger.With().Str("service", "cache-sweep").Logger(),
		name:     "cache-sweep",
	}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("cache sweep service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CacheSweepService) sweep() {
	removed, size := s.sweeper.SweepCache()
	s.report(size)
	if removed > 0 {
		s.logger.Debug().
			Int("removed", removed).
			Int("remaining", size).
			Msg("expired resolver entries removed")
	}
}

// String names the service in supervisor events.
func (s *CacheSweepService) String() string {
	return s.name
}
