// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package feed

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shoprec/shoprec/internal/config"
	"github.com/shoprec/shoprec/internal/models"
)

const feedHeader = "user_id;name;age;gender;location;preferences;product_id;category;product_name;description;tags"

func testFeedConfig(url string) config.FeedConfig {
	return config.FeedConfig{
		URL:           url,
		Timeout:       5 * time.Second,
		RatePerSecond: 0, // unlimited in tests
		RateBurst:     1,
	}
}

func TestParseInteractions(t *testing.T) {
	body := feedHeader + "\n" +
		"1;Alice;30;F;Berlin;books;101;books;Dune;Classic scifi novel;scifi space\n" +
		"2;Bob;41;M;Hamburg;gadgets;202;electronics;Mouse;Wireless mouse;wireless usb\n"

	got, err := ParseInteractions(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseInteractions failed: %v", err)
	}

	want := []models.Interaction{
		{
			UserID: 1, Name: "Alice", Age: 30, Gender: "F", Location: "Berlin",
			Preferences: "books", ProductID: 101, Category: "books",
			ProductName: "Dune", Description: "Classic scifi novel", Tags: "scifi space",
		},
		{
			UserID: 2, Name: "Bob", Age: 41, Gender: "M", Location: "Hamburg",
			Preferences: "gadgets", ProductID: 202, Category: "electronics",
			ProductName: "Mouse", Description: "Wireless mouse", Tags: "wireless usb",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseInteractions() = %+v, want %+v", got, want)
	}
}

func TestParseInteractionsMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"wrong header", "id;name\n1;Alice\n"},
		{
			"missing fields",
			feedHeader + "\n1;Alice;30\n",
		},
		{
			"non-numeric user id",
			feedHeader + "\nabc;Alice;30;F;Berlin;books;101;books;Dune;A novel;scifi\n",
		},
		{
			"non-numeric product id",
			feedHeader + "\n1;Alice;30;F;Berlin;books;x9;books;Dune;A novel;scifi\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInteractions(strings.NewReader(tt.body))
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("ParseInteractions() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	in := []models.Interaction{
		{
			UserID: 7, Name: "Cara", Age: 28, Gender: "F", Location: "Munich",
			Preferences: "sports", ProductID: 303, Category: "sports",
			ProductName: "Yoga Mat", Description: "Non-slip mat", Tags: "yoga fitness",
		},
	}

	var buf bytes.Buffer
	if err := WriteInteractions(&buf, in); err != nil {
		t.Fatalf("WriteInteractions failed: %v", err)
	}
	got, err := ParseInteractions(&buf)
	if err != nil {
		t.Fatalf("ParseInteractions failed: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %+v, want %+v", got, in)
	}
}

func TestHTTPClientInteractions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(feedHeader + "\n1;Alice;30;F;Berlin;books;101;books;Dune;A novel;scifi\n"))
	}))
	defer srv.Close()

	c := NewHTTPClient(testFeedConfig(srv.URL))
	got, err := c.Interactions(context.Background())
	if err != nil {
		t.Fatalf("Interactions failed: %v", err)
	}
	if len(got) != 1 || got[0].UserID != 1 || got[0].ProductID != 101 {
		t.Errorf("Interactions() = %+v, want one row for user 1 product 101", got)
	}
}

func TestHTTPClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(testFeedConfig(srv.URL))
	_, err := c.Interactions(context.Background())
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("Interactions() error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestHTTPClientUnreachable(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(testFeedConfig(url))
	_, err := c.Interactions(context.Background())
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("Interactions() error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestHTTPClientMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedHeader + "\nnot-a-number;Alice;30;F;Berlin;books;101;books;Dune;A novel;scifi\n"))
	}))
	defer srv.Close()

	c := NewHTTPClient(testFeedConfig(srv.URL))
	_, err := c.Interactions(context.Background())
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Interactions() error = %v, want ErrInvalidRecord", err)
	}
}
