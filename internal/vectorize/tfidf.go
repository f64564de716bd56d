// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package vectorize turns text documents into L2-normalized TF-IDF
// feature vectors.
//
// The transformation is deterministic: the vocabulary is sorted
// lexicographically, term frequency is the raw in-document count, and
// inverse document frequency uses smoothing:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// where n is the corpus size and df(t) the number of documents
// containing t. Each resulting row is scaled to unit Euclidean length,
// so dot products between rows are cosine similarities.
package vectorize

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyCorpus is returned when fitting yields no vocabulary: the
// corpus is empty, or every document contains only stop words.
var ErrEmptyCorpus = errors.New("vectorize: empty vocabulary, corpus contains only stop words or no documents")

// tokenPattern matches tokens of two or more word characters.
// Single-character tokens carry no signal and are dropped.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Vectorizer fits TF-IDF models over document corpora. The zero value
// is not usable; construct with New.
type Vectorizer struct {
	stopWords map[string]struct{}
}

// New returns a Vectorizer with English stop word filtering.
func New() *Vectorizer {
	return &Vectorizer{stopWords: englishStopWords}
}

// tokenize lowercases the document and returns its non-stop-word tokens.
func (v *Vectorizer) tokenize(doc string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(doc), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Model is a fitted TF-IDF model: a fixed vocabulary with per-term IDF
// weights. Immutable after fitting and safe for concurrent use.
type Model struct {
	vectorizer *Vectorizer
	terms      []string
	index      map[string]int
	idf        []float64
}

// Fit learns a vocabulary and IDF weights from docs. Returns
// ErrEmptyCorpus if no vocabulary can be built.
func (v *Vectorizer) Fit(docs []string) (*Model, error) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenize(doc) {
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyCorpus
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, t := range terms {
		index[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return &Model{vectorizer: v, terms: terms, index: index, idf: idf}, nil
}

// FitTransform fits a model on docs and returns it together with the
// transformed corpus.
func (v *Vectorizer) FitTransform(docs []string) (*Model, [][]float64, error) {
	m, err := v.Fit(docs)
	if err != nil {
		return nil, nil, err
	}
	return m, m.Transform(docs), nil
}

// Terms returns the vocabulary in index order.
func (m *Model) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Dim returns the vocabulary size, the length of every transformed vector.
func (m *Model) Dim() int {
	return len(m.terms)
}

// Transform maps docs onto the fitted vocabulary. Terms outside the
// vocabulary are ignored. Each row is L2-normalized; a document with no
// known terms yields a zero vector.
func (m *Model) Transform(docs []string) [][]float64 {
	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		rows[i] = m.transformOne(doc)
	}
	return rows
}

func (m *Model) transformOne(doc string) []float64 {
	vec := make([]float64, len(m.terms))
	for _, tok := range m.vectorizer.tokenize(doc) {
		if j, ok := m.index[tok]; ok {
			vec[j] += m.idf[j]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for j := range vec {
			vec[j] /= norm
		}
	}
	return vec
}
