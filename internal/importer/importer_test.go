// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package importer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shoprec/shoprec/internal/config"
	"github.com/shoprec/shoprec/internal/store"
)

const datasetHeader = "user_id,name,age,gender,location,preferences,product_id,category,product_name,description,tags"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(config.StoreConfig{InMemory: true, GCInterval: time.Minute})
	if err != nil {
		t.Fatalf("opening in-memory store failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestImportDeduplicatesEntities(t *testing.T) {
	dataset := datasetHeader + "\n" +
		"1,Alice,30,F,Berlin,books,101,books,Dune,Classic novel,scifi\n" +
		"1,Alice,30,F,Berlin,books,102,books,Foundation,Another novel,scifi\n" +
		"2,Bob,41,M,Hamburg,gadgets,101,books,Dune,Classic novel,scifi\n"

	s := newTestStore(t)
	stats, err := New(s).Import(context.Background(), strings.NewReader(dataset))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if stats.RowsRead != 3 {
		t.Errorf("RowsRead = %d, want 3", stats.RowsRead)
	}
	if stats.UsersImported != 2 || stats.DuplicateUsers != 1 {
		t.Errorf("users imported/duplicate = %d/%d, want 2/1", stats.UsersImported, stats.DuplicateUsers)
	}
	if stats.ItemsImported != 2 || stats.DuplicateItems != 1 {
		t.Errorf("items imported/duplicate = %d/%d, want 2/1", stats.ItemsImported, stats.DuplicateItems)
	}
	if stats.PurchasesAdded != 3 {
		t.Errorf("PurchasesAdded = %d, want 3 (one per row)", stats.PurchasesAdded)
	}

	interactions, err := s.Interactions()
	if err != nil {
		t.Fatalf("Interactions failed: %v", err)
	}
	if len(interactions) != 3 {
		t.Errorf("got %d interactions after import, want 3", len(interactions))
	}
}

func TestImportSkipsMalformedRows(t *testing.T) {
	dataset := datasetHeader + "\n" +
		"1,Alice,30,F,Berlin,books,101,books,Dune,Classic novel,scifi\n" +
		"bad,Carol,x,F,Berlin,books,101,books,Dune,Classic novel,scifi\n"

	s := newTestStore(t)
	stats, err := New(s).Import(context.Background(), strings.NewReader(dataset))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if stats.RowsSkipped != 1 {
		t.Errorf("RowsSkipped = %d, want 1", stats.RowsSkipped)
	}
	if stats.PurchasesAdded != 1 {
		t.Errorf("PurchasesAdded = %d, want 1", stats.PurchasesAdded)
	}
}

func TestImportRejectsWrongHeader(t *testing.T) {
	s := newTestStore(t)
	_, err := New(s).Import(context.Background(), strings.NewReader("id,name\n1,Alice\n"))
	if err == nil {
		t.Fatal("Import with wrong header succeeded, want error")
	}
}

func TestImportPurchaseIDsContinue(t *testing.T) {
	dataset := datasetHeader + "\n" +
		"1,Alice,30,F,Berlin,books,101,books,Dune,Classic novel,scifi\n"

	s := newTestStore(t)
	imp := New(s)
	if _, err := imp.Import(context.Background(), strings.NewReader(dataset)); err != nil {
		t.Fatalf("first Import failed: %v", err)
	}
	if _, err := imp.Import(context.Background(), strings.NewReader(dataset)); err != nil {
		t.Fatalf("second Import failed: %v", err)
	}

	max, err := s.MaxPurchaseID()
	if err != nil {
		t.Fatalf("MaxPurchaseID failed: %v", err)
	}
	if max != 2 {
		t.Errorf("MaxPurchaseID after two imports = %d, want 2", max)
	}

	purchases, err := s.ListPurchases()
	if err != nil {
		t.Fatalf("ListPurchases failed: %v", err)
	}
	for _, p := range purchases {
		if p.Quantity < 1 || p.Quantity > 4 {
			t.Errorf("purchase %d quantity = %d, want 1..4", p.PurchaseID, p.Quantity)
		}
		if p.Price < 10 || p.Price >= 1000 {
			t.Errorf("purchase %d price = %v, want [10,1000)", p.PurchaseID, p.Price)
		}
	}
}
