// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package textvec turns documents into TF-IDF vectors and computes the dense
// pairwise cosine similarity matrix over them.
//
// # Analyzer
//
// Documents are lowercased and split into runs of two or more word characters.
// English stop words are dropped before n-grams are formed, so "the dark
// knight" yields the unigrams "dark", "knight" and the bigram "dark knight".
// Porter stemming can be switched on with Options.Stem.
//
// # Weighting
//
// The vocabulary is fit once. When it exceeds Options.MaxFeatures only the
// terms with the highest corpus-wide frequency are kept (ties go to the
// alphabetically smaller term). Weights are raw term counts times a smoothed
// inverse document frequency:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and every document vector is L2-normalized.
//
// # Memory
//
// The similarity matrix is dense and stored as float64, so it costs
// 8*n*n bytes. Callers are expected to cap the corpus size.
package textvec
