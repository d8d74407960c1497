// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tmdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// topCast is how many billed actors a snapshot row keeps.
const topCast = 3

// SnapshotStats summarizes a FetchSnapshot run.
type SnapshotStats struct {
	Pages      int
	Movies     int
	Skipped    int
	Duplicates int
	Duration   time.Duration
}

// FetchSnapshot pages through the popular list and fetches details for
// every movie. A failed page aborts the run; a failed detail lookup is
// logged and the movie skipped. Movies seen on an earlier page are skipped.
func (c *Client) FetchSnapshot(ctx context.Context, pages int) ([]catalog.RawMovie, SnapshotStats, error) {
	start := time.Now()
	var stats SnapshotStats
	rows := make([]catalog.RawMovie, 0, pages*20)
	seen := make(map[int64]struct{}, pages*20)

	for page := 1; page <= pages; page++ {
		list, err := c.PopularPage(ctx, page)
		if err != nil {
			return nil, stats, fmt.Errorf("fetch popular page %d: %w", page, err)
		}
		stats.Pages++

		for _, summary := range list.Results {
			if _, dup := seen[summary.ID]; dup {
				stats.Duplicates++
				continue
			}
			seen[summary.ID] = struct{}{}

			details, err := c.MovieDetails(ctx, summary.ID)
			if err != nil {
				if ctx.Err() != nil {
					return nil, stats, ctx.Err()
				}
				stats.Skipped++
				c.logger.Warn().Err(err).Int64("movie_id", summary.ID).Msg("skipping movie")
				continue
			}
			rows = append(rows, c.snapshotRow(summary, details))
		}

		c.logger.Info().
			Int("page", page).
			Int("pages", pages).
			Int("movies", len(rows)).
			Msg("processed popular page")

		if list.TotalPages > 0 && page >= list.TotalPages {
			break
		}
	}

	stats.Movies = len(rows)
	stats.Duration = time.Since(start)
	return rows, stats, nil
}

// snapshotRow merges a list entry with its details into a catalog row.
func (c *Client) snapshotRow(s MovieSummary, d *MovieDetails) catalog.RawMovie {
	return catalog.RawMovie{
		ID:          strconv.FormatInt(s.ID, 10),
		Title:       s.Title,
		ReleaseDate: isoDate(d.ReleaseDate),
		Overview:    s.Overview,
		VoteAverage: strconv.FormatFloat(s.VoteAverage, 'f', -1, 64),
		VoteCount:   strconv.FormatInt(s.VoteCount, 10),
		Popularity:  strconv.FormatFloat(s.Popularity, 'f', -1, 64),
		Director:    director(d.Credits.Crew),
		Cast:        strings.Join(castNames(d.Credits.Cast, topCast), ", "),
		Genres:      strings.Join(genreNames(d.Genres), ", "),
		PosterURL:   c.posterURL(d.PosterPath),
	}
}

// director returns the first crew member credited as Director.
func director(crew []CrewMember) string {
	for _, m := range crew {
		if m.Job == "Director" {
			return m.Name
		}
	}
	return ""
}

// castNames returns the first n cast names in response order.
func castNames(cast []CastMember, n int) []string {
	names := make([]string, 0, n)
	for _, m := range cast {
		if len(names) == n {
			break
		}
		names = append(names, m.Name)
	}
	return names
}

func genreNames(genres []Genre) []string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return names
}

// isoDate normalizes a release date to YYYY-MM-DD, or "" if unparseable.
func isoDate(s string) string {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func (c *Client) posterURL(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + path
}
