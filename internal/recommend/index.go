// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/fuzzy"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/textvec"
)

// IndexedCatalog is a catalog with its text index, similarity matrix and
// title matcher. It is immutable after construction and safe for concurrent
// use.
type IndexedCatalog struct {
	config Config
	logger zerolog.Logger

	catalog    *catalog.Catalog
	vectorizer *textvec.Vectorizer
	similarity *textvec.SimilarityMatrix
	matcher    *fuzzy.Matcher

	// genres[i] is the genre set of movie i, for the Jaccard bonus.
	genres []map[string]struct{}

	resolved *cache.LRU[resolution]

	buildDuration time.Duration
}

// resolution is a memoized Resolve outcome, misses included.
type resolution struct {
	match Match
	ok    bool
}

// Build validates records, derives features and builds the similarity index.
// Failures wrap catalog.ErrDataLoad.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Build(ctx context.Context, records []catalog.RawMovie, cfg Config, logger zerolog.Logger) (*IndexedCatalog, error) {
	if cfg.MaxCatalogSize > 0 && len(records) > cfg.MaxCatalogSize {
		return nil, fmt.Errorf("%w: %d rows, limit %d", ErrCatalogTooLarge, len(records), cfg.MaxCatalogSize)
	}

	cat, err := catalog.Build(records, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return NewIndexedCatalog(ctx, cat, cfg, logger)
}

// NewIndexedCatalog indexes an already built catalog.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewIndexedCatalog(ctx context.Context, cat *catalog.Catalog, cfg Config, logger zerolog.Logger) (*IndexedCatalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if cat.Len() == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	if cat.Len() > cfg.MaxCatalogSize {
		return nil, fmt.Errorf("%w: %d rows, limit %d", ErrCatalogTooLarge, cat.Len(), cfg.MaxCatalogSize)
	}

	start := time.Now()
	logger = logger.With().Str("component", "recommend").Logger()

	opts := textvec.DefaultOptions()
	opts.MaxFeatures = cfg.MaxFeatures
	opts.Stem = cfg.Stem

	vectorizer, vectors, err := textvec.Fit(cat.CombinedTexts(), opts)
	if err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}

	sim, err := textvec.CosineMatrix(ctx, vectors, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("build similarity matrix: %w", err)
	}

	genres := make([]map[string]struct{}, cat.Len())
	for i := range cat.Movies {
		set := make(map[string]struct{}, len(cat.Movies[i].Genres))
		for _, g := range cat.Movies[i].Genres {
			set[g] = struct{}{}
		}
		genres[i] = set
	}

	idx := &IndexedCatalog{
		config:        cfg,
		logger:        logger,
		catalog:       cat,
		vectorizer:    vectorizer,
		similarity:    sim,
		matcher:       fuzzy.NewMatcher(cat.Titles()),
		genres:        genres,
		resolved:      cache.New[resolution](cfg.CacheSize, cfg.CacheTTL),
		buildDuration: time.Since(start),
	}

	metrics.RecordCatalogBuild(idx.buildDuration, cat.Len(), vectorizer.VocabularySize(), sim.Bytes())
	logger.Info().
		Int("movies", cat.Len()).
		Int("vocabulary", vectorizer.VocabularySize()).
		Int("similarity_bytes", sim.Bytes()).
		Float64("mean_vote", cat.MeanVote).
		Float64("vote_quantile", cat.VoteQuantile).
		Dur("duration", idx.buildDuration).
		Msg("catalog indexed")

	return idx, nil
}

// Config returns the configuration the index was built with.
func (x *IndexedCatalog) Config() Config {
	return x.config
}

// Len returns the number of movies.
func (x *IndexedCatalog) Len() int {
	return x.catalog.Len()
}

// Movie returns a copy of the catalog movie at index i.
func (x *IndexedCatalog) Movie(i int) (catalog.Movie, error) {
	if i < 0 || i >= x.catalog.Len() {
		return catalog.Movie{}, &InvalidAnchorError{Index: i, Size: x.catalog.Len()}
	}
	return x.catalog.Movies[i].Clone(), nil
}

// Similarity returns the cosine similarity of movies i and j.
func (x *IndexedCatalog) Similarity(i, j int) float64 {
	return x.similarity.At(i, j)
}

// GenreSimilarity is the Jaccard index of the genre sets of i and j, or 0
// when both are empty.
func (x *IndexedCatalog) GenreSimilarity(i, j int) float64 {
	return jaccard(x.genres[i], x.genres[j])
}

// SweepCache drops expired resolver entries and returns the remaining size.
func (x *IndexedCatalog) SweepCache() (removed, size int) {
	removed = x.resolved.CleanupExpired()
	return removed, x.resolved.Len()
}

// Stats summarizes the index.
func (x *IndexedCatalog) Stats() Stats {
	return Stats{
		Movies:           x.catalog.Len(),
		VocabularySize:   x.vectorizer.VocabularySize(),
		SimilarityBytes:  x.similarity.Bytes(),
		MeanVote:         x.catalog.MeanVote,
		VoteQuantile:     x.catalog.VoteQuantile,
		BuiltAt:          x.catalog.BuiltAt,
		BuildDuration:    x.buildDuration.String(),
		ResolveCacheSize: x.resolved.Len(),
	}
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for g := range a {
		if _, ok := b[g]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
