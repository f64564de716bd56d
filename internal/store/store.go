// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package store persists users, items and purchases in BadgerDB.
// Entities are JSON documents under zero-padded key prefixes, so prefix
// iteration yields them in ascending ID order.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/shoprec/shoprec/internal/config"
	"github.com/shoprec/shoprec/internal/logging"
)

// Key prefixes for BadgerDB storage
const (
	userKeyPrefix     = "user:"
	itemKeyPrefix     = "item:"
	purchaseKeyPrefix = "purchase:"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is the BadgerDB-backed entity store. Safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at the configured path.
func Open(cfg config.StoreConfig) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithLogger(badgerLogger{}).
		WithInMemory(cfg.InMemory)
	if cfg.InMemory {
		opts.Dir = ""
		opts.ValueDir = ""
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %s: %w", cfg.Path, err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunGC runs one value-log garbage collection pass. Badger returns
// ErrNoRewrite when there was nothing to collect; that is not an error
// to the caller.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

func userKey(id int) []byte     { return []byte(fmt.Sprintf("%s%012d", userKeyPrefix, id)) }
func itemKey(id int) []byte     { return []byte(fmt.Sprintf("%s%012d", itemKeyPrefix, id)) }
func purchaseKey(id int) []byte { return []byte(fmt.Sprintf("%s%012d", purchaseKeyPrefix, id)) }

// get loads and decodes one document.
func (s *Store) get(key []byte, decode func([]byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(decode)
	})
}

// set writes one encoded document.
func (s *Store) set(key, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes one document, reporting ErrNotFound for absent keys.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return txn.Delete(key)
	})
}

// scan visits every document under prefix in key order.
func (s *Store) scan(prefix []byte, visit func([]byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(visit); err != nil {
				return err
			}
		}
		return nil
	})
}

// count returns the number of documents under prefix.
func (s *Store) count(prefix []byte) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// badgerLogger routes Badger's internal logging through zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}
