// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package fuzzy

// Result is the best choice found by a Matcher.
type Result struct {
	// Index is the position of the choice in the slice given to NewMatcher.
	Index int
	Choice string
	Score  int
}

// Matcher scores queries against a fixed list of choices. The choices are
// processed once; a Matcher is safe for concurrent use.
type Matcher struct {
	choices   []string
	processed []string
}

// NewMatcher prepares choices for repeated matching.
func NewMatcher(choices []string) *Matcher {
	m := &Matcher{
		choices:   make([]string, len(choices)),
		processed: make([]string, len(choices)),
	}
	copy(m.choices, choices)
	for i, c := range choices {
		m.processed[i] = Process(c)
	}
	return m
}

// Len returns the number of choices.
func (m *Matcher) Len() int {
	return len(m.choices)
}

// Best returns the highest WRatio choice for query. When several choices
// share the top score the first one in choice order wins. ok is false when
// there are no choices or the query processes to nothing.
func (m *Matcher) Best(query string) (Result, bool) {
	q := Process(query)
	if q == "" || len(m.choices) == 0 {
		return Result{}, false
	}

	best := Result{Index: -1, Score: -1}
	for i, p := range m.processed {
		score := wratio(q, p)
		if score > best.Score {
			best = Result{Index: i, Choice: m.choices[i], Score: score}
			if score == 100 {
				break
			}
		}
	}
	return best, true
}

// BestAbove is Best restricted to scores >= threshold.
func (m *Matcher) BestAbove(query string, threshold int) (Result, bool) {
	r, ok := m.Best(query)
	if !ok || r.Score < threshold {
		return Result{}, false
	}
	return r, true
}
