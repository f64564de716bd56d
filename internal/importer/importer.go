// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package importer seeds the entity store from a CSV dataset.
//
// The dataset is one row per historical purchase, carrying the user and
// product attributes inline. Users and items are deduplicated by ID; a
// purchase record is generated per row with a synthetic quantity and
// price, the way the seed dataset ships without order details.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/metrics"
	"github.com/shoprec/shoprec/internal/models"
	"github.com/shoprec/shoprec/internal/store"
)

// datasetColumns is the expected header of the seed dataset,
// comma-separated.
var datasetColumns = []string{
	"user_id", "name", "age", "gender", "location", "preferences",
	"product_id", "category", "product_name", "description", "tags",
}

// Stats summarizes one import run.
type Stats struct {
	StartTime      time.Time
	EndTime        time.Time
	RowsRead       int
	UsersImported  int
	ItemsImported  int
	PurchasesAdded int
	RowsSkipped    int
	DuplicateUsers int
	DuplicateItems int
}

// Duration returns the elapsed import time.
func (s Stats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Importer seeds a Store from a dataset file.
type Importer struct {
	store *store.Store
	// rng generates synthetic quantities and prices for seed purchases.
	rng *rand.Rand
}

// New builds an Importer over the given store.
func New(s *store.Store) *Importer {
	return &Importer{
		store: s,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ImportFile imports the dataset at path. Malformed rows are skipped and
// counted, not fatal: a seed dataset with a few bad rows should still
// load. Safe to run repeatedly; users and items are upserts and purchase
// IDs continue after the current maximum.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	return i.Import(ctx, f)
}

// Import reads the dataset from r and writes entities into the store.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return stats, fmt.Errorf("reading dataset header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return stats, err
	}

	nextPurchaseID, err := i.store.MaxPurchaseID()
	if err != nil {
		return stats, fmt.Errorf("determining next purchase id: %w", err)
	}

	seenUsers := make(map[int]struct{})
	seenItems := make(map[int]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.RowsSkipped++
			logging.Warn().Err(err).Int("row", stats.RowsRead+1).Msg("Skipping unreadable dataset row")
			continue
		}
		stats.RowsRead++

		u, it, err := parseRow(record)
		if err != nil {
			stats.RowsSkipped++
			metrics.ImportRecords.WithLabelValues("row", "skipped").Inc()
			logging.Warn().Err(err).Int("row", stats.RowsRead).Msg("Skipping malformed dataset row")
			continue
		}

		if _, dup := seenUsers[u.UserID]; dup {
			stats.DuplicateUsers++
		} else {
			seenUsers[u.UserID] = struct{}{}
			if err := i.store.PutUser(u); err != nil {
				return stats, fmt.Errorf("storing user %d: %w", u.UserID, err)
			}
			stats.UsersImported++
			metrics.ImportRecords.WithLabelValues("user", "imported").Inc()
		}

		if _, dup := seenItems[it.ProductID]; dup {
			stats.DuplicateItems++
		} else {
			seenItems[it.ProductID] = struct{}{}
			if err := i.store.PutItem(it); err != nil {
				return stats, fmt.Errorf("storing item %d: %w", it.ProductID, err)
			}
			stats.ItemsImported++
			metrics.ImportRecords.WithLabelValues("item", "imported").Inc()
		}

		nextPurchaseID++
		p := models.Purchase{
			PurchaseID: nextPurchaseID,
			UserID:     u.UserID,
			ProductID:  it.ProductID,
			Quantity:   1 + i.rng.Intn(4),
			Price:      10 + float64(i.rng.Intn(99000))/100,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := i.store.PutPurchase(p); err != nil {
			return stats, fmt.Errorf("storing purchase %d: %w", p.PurchaseID, err)
		}
		stats.PurchasesAdded++
		metrics.ImportRecords.WithLabelValues("purchase", "imported").Inc()

		if stats.RowsRead%1000 == 0 {
			logging.Info().
				Int("rows", stats.RowsRead).
				Int("users", stats.UsersImported).
				Int("items", stats.ItemsImported).
				Msg("Import progress")
		}
	}

	logging.Info().
		Int("rows", stats.RowsRead).
		Int("users", stats.UsersImported).
		Int("items", stats.ItemsImported).
		Int("purchases", stats.PurchasesAdded).
		Int("skipped", stats.RowsSkipped).
		Dur("elapsed", time.Since(stats.StartTime)).
		Msg("Dataset import finished")

	return stats, nil
}

func validateHeader(header []string) error {
	if len(header) != len(datasetColumns) {
		return fmt.Errorf("dataset header has %d columns, want %d", len(header), len(datasetColumns))
	}
	for i, want := range datasetColumns {
		if header[i] != want {
			return fmt.Errorf("dataset header column %d is %q, want %q", i, header[i], want)
		}
	}
	return nil
}

func parseRow(record []string) (models.User, models.Item, error) {
	var u models.User
	var it models.Item
	if len(record) != len(datasetColumns) {
		return u, it, fmt.Errorf("row has %d fields, want %d", len(record), len(datasetColumns))
	}

	userID, err := strconv.Atoi(record[0])
	if err != nil {
		return u, it, fmt.Errorf("user_id %q is not an integer", record[0])
	}
	age, err := strconv.Atoi(record[2])
	if err != nil {
		return u, it, fmt.Errorf("age %q is not an integer", record[2])
	}
	productID, err := strconv.Atoi(record[6])
	if err != nil {
		return u, it, fmt.Errorf("product_id %q is not an integer", record[6])
	}

	u = models.User{
		UserID:      userID,
		Name:        record[1],
		Age:         age,
		Gender:      record[3],
		Location:    record[4],
		Preferences: record[5],
	}
	it = models.Item{
		ProductID:   productID,
		Category:    record[7],
		ProductName: record[8],
		Description: record[9],
		Tags:        record[10],
	}
	return u, it, nil
}
