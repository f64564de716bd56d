// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package vectorize

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestFitEmptyCorpus(t *testing.T) {
	tests := []struct {
		name string
		docs []string
	}{
		{"no documents", nil},
		{"empty documents", []string{"", ""}},
		{"only stop words", []string{"the and of", "a an"}},
		{"only single characters", []string{"x y z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Fit(tt.docs)
			if !errors.Is(err, ErrEmptyCorpus) {
				t.Errorf("Fit(%v) error = %v, want ErrEmptyCorpus", tt.docs, err)
			}
		})
	}
}

func TestVocabularySortedAndFiltered(t *testing.T) {
	m, err := New().Fit([]string{"the Scifi Books", "fantasy and books"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	want := []string{"books", "fantasy", "scifi"}
	if got := m.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestSmoothIDF(t *testing.T) {
	// Two documents: "books" appears in both, "scifi" in one.
	m, err := New().Fit([]string{"books scifi", "books fantasy"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// idf = ln((1+n)/(1+df)) + 1 with n=2
	wantBooks := 1.0                 // ln(3/3) + 1
	wantScifi := math.Log(1.5) + 1.0 // ln(3/2) + 1

	if got := m.idf[m.index["books"]]; math.Abs(got-wantBooks) > 1e-12 {
		t.Errorf("idf(books) = %v, want %v", got, wantBooks)
	}
	if got := m.idf[m.index["scifi"]]; math.Abs(got-wantScifi) > 1e-12 {
		t.Errorf("idf(scifi) = %v, want %v", got, wantScifi)
	}
}

func TestTransformRowsAreUnitLength(t *testing.T) {
	docs := []string{
		"electronics wireless mouse",
		"books scifi space opera",
		"books fantasy dragons",
	}
	m, rows, err := New().FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	if len(rows) != len(docs) {
		t.Fatalf("got %d rows, want %d", len(rows), len(docs))
	}

	for i, row := range rows {
		if len(row) != m.Dim() {
			t.Errorf("row %d has %d dims, want %d", i, len(row), m.Dim())
		}
		var norm float64
		for _, w := range row {
			norm += w * w
		}
		if math.Abs(math.Sqrt(norm)-1) > 1e-12 {
			t.Errorf("row %d norm = %v, want 1", i, math.Sqrt(norm))
		}
	}
}

func TestTransformUnknownTermsIgnored(t *testing.T) {
	m, err := New().Fit([]string{"books scifi"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	rows := m.Transform([]string{"quantum gardening"})
	for j, w := range rows[0] {
		if w != 0 {
			t.Errorf("component %d = %v, want 0 for out-of-vocabulary document", j, w)
		}
	}
}

func TestRepeatedTermRaisesWeight(t *testing.T) {
	m, err := New().Fit([]string{"wireless mouse", "keyboard pad"})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	single := m.transformOne("wireless mouse")
	double := m.transformOne("wireless wireless mouse")

	wi := m.index["wireless"]
	mi := m.index["mouse"]
	if single[wi]/single[mi] >= double[wi]/double[mi] {
		t.Errorf("repeating a term should raise its relative weight: single ratio %v, double ratio %v",
			single[wi]/single[mi], double[wi]/double[mi])
	}
}

func TestDeterministic(t *testing.T) {
	docs := []string{"books scifi", "electronics mouse", "books fantasy"}

	m1, rows1, err := New().FitTransform(docs)
	if err != nil {
		t.Fatalf("first FitTransform failed: %v", err)
	}
	m2, rows2, err := New().FitTransform(docs)
	if err != nil {
		t.Fatalf("second FitTransform failed: %v", err)
	}

	if !reflect.DeepEqual(m1.Terms(), m2.Terms()) {
		t.Errorf("vocabularies differ: %v vs %v", m1.Terms(), m2.Terms())
	}
	if !reflect.DeepEqual(rows1, rows2) {
		t.Error("transformed matrices differ between identical fits")
	}
}
