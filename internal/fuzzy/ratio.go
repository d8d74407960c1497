// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package fuzzy scores approximate string matches on a 0-100 scale.
//
// The scorers follow the usual family: Ratio (normalized indel similarity),
// PartialRatio (best aligned substring), TokenSortRatio and TokenSetRatio
// (order and duplication insensitive) and WRatio, a weighted blend that picks
// the most appropriate of the others based on the length difference of the
// inputs. Scores are rounded half to even.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
)

// WRatio scaling factors.
const (
	unbaseScale        = 0.95
	partialScale       = 0.90
	longPartialScale   = 0.6
	partialLengthRatio = 1.5
	longLengthRatio    = 8.0
)

// Process lowercases s, replaces every non letter/digit/underscore rune with
// a space and trims the result.
func Process(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(mapped)
}

func round(x float64) int {
	return int(math.RoundToEven(x))
}

// similarity is 2*LCS/(len(a)+len(b)) over runes, in [0, 1].
func similarity(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(edlib.LCS(string(a), string(b))) / float64(total)
}

// Ratio is the normalized indel similarity of a and b. Either input empty
// scores 0.
func Ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return round(100 * similarity([]rune(a), []rune(b)))
}

// PartialRatio scores the shorter input against its best aligned window of
// the longer one.
func PartialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		r := similarity(short, long[start:start+len(short)])
		if r > 0.995 {
			return 100
		}
		if r > best {
			best = r
		}
	}
	return round(100 * best)
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// TokenSortRatio compares the inputs after sorting their tokens.
func TokenSortRatio(a, b string) int {
	return tokenSort(Process(a), Process(b), false)
}

func tokenSort(a, b string, partial bool) int {
	sa, sb := sortedTokens(a), sortedTokens(b)
	if partial {
		return PartialRatio(sa, sb)
	}
	return Ratio(sa, sb)
}

// TokenSetRatio compares the shared tokens against each side's remainder, so
// duplicates and extra words weigh less.
func TokenSetRatio(a, b string) int {
	return tokenSet(Process(a), Process(b), false)
}

func tokenSet(a, b string, partial bool) int {
	if a == "" || b == "" {
		return 0
	}

	setA := tokenSetOf(a)
	setB := tokenSetOf(b)

	var common, onlyA, onlyB []string
	for t := range setA {
		if _, ok := setB[t]; ok {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if _, ok := setA[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(common, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	score := Ratio
	if partial {
		score = PartialRatio
	}
	return max(score(sect, combinedA), score(sect, combinedB), score(combinedA, combinedB))
}

func tokenSetOf(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		set[t] = struct{}{}
	}
	return set
}

// WRatio is the weighted blend used for title matching. Inputs are
// processed first; an input that processes to empty scores 0.
func WRatio(a, b string) int {
	return wratio(Process(a), Process(b))
}

// wratio expects processed inputs.
func wratio(p1, p2 string) int {
	if p1 == "" || p2 == "" {
		return 0
	}

	base := float64(Ratio(p1, p2))

	l1, l2 := len([]rune(p1)), len([]rune(p2))
	lenRatio := float64(max(l1, l2)) / float64(min(l1, l2))

	if lenRatio < partialLengthRatio {
		tsor := float64(tokenSort(p1, p2, false)) * unbaseScale
		tser := float64(tokenSet(p1, p2, false)) * unbaseScale
		return round(max(base, tsor, tser))
	}

	scale := partialScale
	if lenRatio > longLengthRatio {
		scale = longPartialScale
	}

	partial := float64(PartialRatio(p1, p2)) * scale
	ptsor := float64(tokenSort(p1, p2, true)) * unbaseScale * scale
	ptser := float64(tokenSet(p1, p2, true)) * unbaseScale * scale
	return round(max(base, partial, ptsor, ptser))
}
