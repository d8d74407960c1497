// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package textvec

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/reiver/go-porterstemmer"
)

// ErrNoDocuments is returned when Fit is called with an empty corpus.
var ErrNoDocuments = errors.New("textvec: no documents to fit")

// tokenPattern matches runs of at least two word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// Options configures the analyzer and vocabulary size.
type Options struct {
	// NGramMin and NGramMax bound the n-gram lengths (inclusive).
	NGramMin int
	NGramMax int

	// MaxFeatures caps the vocabulary. Zero keeps every term.
	MaxFeatures int

	// StopWords are removed before n-grams are formed. Nil disables removal.
	StopWords map[string]struct{}

	// Stem applies the Porter stemmer to each surviving token.
	Stem bool
}

// DefaultOptions returns English stop-word removal, unigrams and bigrams,
// and a 5000 term vocabulary.
func DefaultOptions() Options {
	return Options{
		NGramMin:    1,
		NGramMax:    2,
		MaxFeatures: 5000,
		StopWords:   EnglishStopWords(),
	}
}

// Vector is a sparse vector with ascending Indices.
type Vector struct {
	Indices []int
	Values  []float64
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Vectorizer holds a fitted vocabulary and its IDF weights.
// It is immutable after Fit and safe for concurrent use.
type Vectorizer struct {
	opts  Options
	vocab map[string]int
	terms []string
	idf   []float64
}

// Fit learns the vocabulary from docs and returns the fitted vectorizer along
// with the TF-IDF vector of every document, in input order.
func Fit(docs []string, opts Options) (*Vectorizer, []Vector, error) {
	if len(docs) == 0 {
		return nil, nil, ErrNoDocuments
	}
	if opts.NGramMin < 1 {
		opts.NGramMin = 1
	}
	if opts.NGramMax < opts.NGramMin {
		opts.NGramMax = opts.NGramMin
	}

	v := &Vectorizer{opts: opts}

	analyzed := make([][]string, len(docs))
	totals := make(map[string]int)
	docFreq := make(map[string]int)
	for i, doc := range docs {
		terms := v.Analyze(doc)
		analyzed[i] = terms

		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			totals[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	v.terms = selectTerms(totals, opts.MaxFeatures)
	v.vocab = make(map[string]int, len(v.terms))
	v.idf = make([]float64, len(v.terms))
	n := float64(len(docs))
	for i, t := range v.terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, terms := range analyzed {
		vectors[i] = v.weigh(terms)
	}
	return v, vectors, nil
}

// selectTerms returns the vocabulary in alphabetical order, keeping the
// limit most frequent terms when limit > 0.
func selectTerms(totals map[string]int, limit int) []string {
	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	if limit > 0 && len(terms) > limit {
		sort.SliceStable(terms, func(i, j int) bool {
			return totals[terms[i]] > totals[terms[j]]
		})
		terms = terms[:limit]
		sort.Strings(terms)
	}
	return terms
}

// Analyze splits doc into the n-gram terms the vectorizer counts.
func (v *Vectorizer) Analyze(doc string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(doc), -1)

	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := v.opts.StopWords[tok]; stop {
			continue
		}
		if v.opts.Stem {
			tok = porterstemmer.StemString(tok)
		}
		tokens = append(tokens, tok)
	}

	var terms []string
	for size := v.opts.NGramMin; size <= v.opts.NGramMax; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+size], " "))
		}
	}
	return terms
}

// weigh vectorizes analyzed terms against the fitted vocabulary. Unknown
// terms are ignored.
func (v *Vectorizer) weigh(terms []string) Vector {
	counts := make(map[int]int, len(terms))
	for _, t := range terms {
		if idx, ok := v.vocab[t]; ok {
			counts[idx]++
		}
	}

	vec := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	var sumSq float64
	for _, idx := range vec.Indices {
		w := float64(counts[idx]) * v.idf[idx]
		vec.Values = append(vec.Values, w)
		sumSq += w * w
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}

// VocabularySize returns the number of terms kept by Fit.
func (v *Vectorizer) VocabularySize() int {
	return len(v.terms)
}

// Terms returns the vocabulary in index order.
func (v *Vectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// IDF returns the inverse document frequency of term and whether it is in
// the vocabulary.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	idx, ok := v.vocab[term]
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}
