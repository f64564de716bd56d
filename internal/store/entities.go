// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package store

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/models"
)

// PutUser creates or replaces a user.
func (s *Store) PutUser(u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user %d: %w", u.UserID, err)
	}
	return s.set(userKey(u.UserID), data)
}

// GetUser returns the user with the given ID, or ErrNotFound.
func (s *Store) GetUser(id int) (models.User, error) {
	var u models.User
	err := s.get(userKey(id), func(val []byte) error {
		return json.Unmarshal(val, &u)
	})
	return u, err
}

// DeleteUser removes a user, reporting ErrNotFound when absent.
func (s *Store) DeleteUser(id int) error {
	return s.delete(userKey(id))
}

// ListUsers returns all users in ascending ID order.
func (s *Store) ListUsers() ([]models.User, error) {
	users := []models.User{}
	err := s.scan([]byte(userKeyPrefix), func(val []byte) error {
		var u models.User
		if err := json.Unmarshal(val, &u); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}
		users = append(users, u)
		return nil
	})
	return users, err
}

// CountUsers returns the number of stored users.
func (s *Store) CountUsers() (int, error) {
	return s.count([]byte(userKeyPrefix))
}

// PutItem creates or replaces a catalog item.
func (s *Store) PutItem(it models.Item) error {
	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("marshal item %d: %w", it.ProductID, err)
	}
	return s.set(itemKey(it.ProductID), data)
}

// GetItem returns the item with the given product ID, or ErrNotFound.
func (s *Store) GetItem(id int) (models.Item, error) {
	var it models.Item
	err := s.get(itemKey(id), func(val []byte) error {
		return json.Unmarshal(val, &it)
	})
	return it, err
}

// DeleteItem removes an item, reporting ErrNotFound when absent.
func (s *Store) DeleteItem(id int) error {
	return s.delete(itemKey(id))
}

// ListItems returns all items in ascending product ID order.
func (s *Store) ListItems() ([]models.Item, error) {
	items := []models.Item{}
	err := s.scan([]byte(itemKeyPrefix), func(val []byte) error {
		var it models.Item
		if err := json.Unmarshal(val, &it); err != nil {
			return fmt.Errorf("unmarshal item: %w", err)
		}
		items = append(items, it)
		return nil
	})
	return items, err
}

// CountItems returns the number of stored items.
func (s *Store) CountItems() (int, error) {
	return s.count([]byte(itemKeyPrefix))
}

// PutPurchase creates or replaces a purchase.
func (s *Store) PutPurchase(p models.Purchase) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal purchase %d: %w", p.PurchaseID, err)
	}
	return s.set(purchaseKey(p.PurchaseID), data)
}

// GetPurchase returns the purchase with the given ID, or ErrNotFound.
func (s *Store) GetPurchase(id int) (models.Purchase, error) {
	var p models.Purchase
	err := s.get(purchaseKey(id), func(val []byte) error {
		return json.Unmarshal(val, &p)
	})
	return p, err
}

// DeletePurchase removes a purchase, reporting ErrNotFound when absent.
func (s *Store) DeletePurchase(id int) error {
	return s.delete(purchaseKey(id))
}

// ListPurchases returns all purchases in ascending ID order.
func (s *Store) ListPurchases() ([]models.Purchase, error) {
	purchases := []models.Purchase{}
	err := s.scan([]byte(purchaseKeyPrefix), func(val []byte) error {
		var p models.Purchase
		if err := json.Unmarshal(val, &p); err != nil {
			return fmt.Errorf("unmarshal purchase: %w", err)
		}
		purchases = append(purchases, p)
		return nil
	})
	return purchases, err
}

// CountPurchases returns the number of stored purchases.
func (s *Store) CountPurchases() (int, error) {
	return s.count([]byte(purchaseKeyPrefix))
}

// MaxPurchaseID returns the highest purchase ID in the store, or 0 when
// there are no purchases.
func (s *Store) MaxPurchaseID() (int, error) {
	max := 0
	err := s.scan([]byte(purchaseKeyPrefix), func(val []byte) error {
		var p models.Purchase
		if err := json.Unmarshal(val, &p); err != nil {
			return fmt.Errorf("unmarshal purchase: %w", err)
		}
		if p.PurchaseID > max {
			max = p.PurchaseID
		}
		return nil
	})
	return max, err
}

// Interactions joins every purchase with its user and item, in ascending
// purchase ID order. Purchases referencing a missing user or item are
// skipped with a warning, not fatal: a half-imported dataset should not
// break recommendations for everyone else.
func (s *Store) Interactions() ([]models.Interaction, error) {
	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}
	userByID := make(map[int]models.User, len(users))
	for _, u := range users {
		userByID[u.UserID] = u
	}

	items, err := s.ListItems()
	if err != nil {
		return nil, err
	}
	itemByID := make(map[int]models.Item, len(items))
	for _, it := range items {
		itemByID[it.ProductID] = it
	}

	purchases, err := s.ListPurchases()
	if err != nil {
		return nil, err
	}

	interactions := []models.Interaction{}
	for _, p := range purchases {
		u, okUser := userByID[p.UserID]
		it, okItem := itemByID[p.ProductID]
		if !okUser || !okItem {
			logging.Warn().
				Int("purchase_id", p.PurchaseID).
				Int("user_id", p.UserID).
				Int("product_id", p.ProductID).
				Bool("user_found", okUser).
				Bool("item_found", okItem).
				Msg("Skipping purchase with dangling reference")
			continue
		}
		interactions = append(interactions, models.Interaction{
			UserID:      u.UserID,
			Name:        u.Name,
			Age:         u.Age,
			Gender:      u.Gender,
			Location:    u.Location,
			Preferences: u.Preferences,
			ProductID:   it.ProductID,
			Category:    it.Category,
			ProductName: it.ProductName,
			Description: it.Description,
			Tags:        it.Tags,
		})
	}
	return interactions, nil
}
