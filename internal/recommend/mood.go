// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// moodGenres maps a detected emotion to the genres offered for it.
var moodGenres = map[string][]string{
	"happy":    {"Comedy", "Adventure"},
	"sad":      {"Drama", "Romance"},
	"angry":    {"Action", "Thriller"},
	"surprise": {"Science Fiction", "Fantasy"},
	"neutral":  {"Romance", "Comedy"},
	"fear":     {"Horror", "Thriller"},
	"disgust":  {"Thriller", "Crime"},
}

// fallbackMoodGenres is used for emotions not in moodGenres.
var fallbackMoodGenres = []string{"Comedy"}

// Moods returns the known emotion names in sorted order.
func Moods() []string {
	names := make([]string, 0, len(moodGenres))
	for k := range moodGenres {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MoodGenres returns the genres for emotion. Unknown emotions get Comedy.
func MoodGenres(emotion string) []string {
	if g, ok := moodGenres[strings.ToLower(strings.TrimSpace(emotion))]; ok {
		return g
	}
	return fallbackMoodGenres
}

// MoodPicks returns up to n movies in any of the emotion's genres, ordered by
// normalized rating, then normalized popularity, then catalog order.
func (x *IndexedCatalog) MoodPicks(emotion string, n int) ([]RecommendationView, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	wanted := MoodGenres(emotion)
	picks := make([]int, 0, 64)
	for i := range x.catalog.Movies {
		for _, g := range wanted {
			if _, ok := x.genres[i][g]; ok {
				picks = append(picks, i)
				break
			}
		}
	}

	movies := x.catalog.Movies
	sort.SliceStable(picks, func(a, b int) bool {
		fa, fb := movies[picks[a]].Features, movies[picks[b]].Features
		if fa.NormalizedRating != fb.NormalizedRating {
			return fa.NormalizedRating > fb.NormalizedRating
		}
		return fa.NormalizedPopularity > fb.NormalizedPopularity
	})
	if len(picks) > n {
		picks = picks[:n]
	}

	views := make([]RecommendationView, len(picks))
	for i, idx := range picks {
		views[i] = NewView(idx, &movies[idx], 0)
	}
	return views, nil
}
