// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package models defines the domain types shared across Shoprec:
// stored entities (users, items, purchases), the joined interaction
// record produced by the feed, and the recommendation API contract.
package models

// User is a registered shopper.
type User struct {
	UserID      int    `json:"user_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Age         int    `json:"age" validate:"gte=0,lte=150"`
	Gender      string `json:"gender"`
	Location    string `json:"location"`
	Preferences string `json:"preferences"`
}

// Item is a catalog product. Category and Tags drive the content-based
// recommendation model.
type Item struct {
	ProductID   int    `json:"product_id" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// Purchase records one user buying one product.
type Purchase struct {
	PurchaseID int     `json:"purchase_id" validate:"required,gt=0"`
	ProductID  int     `json:"product_id" validate:"required,gt=0"`
	UserID     int     `json:"user_id" validate:"required,gt=0"`
	Quantity   int     `json:"quantity" validate:"gt=0"`
	Price      float64 `json:"price" validate:"gte=0"`
	Timestamp  string  `json:"timestamp"`
}

// Interaction is one row of the interaction feed: a historical purchase
// joined with the purchasing user's attributes and the item's attributes.
// Immutable once fetched.
type Interaction struct {
	UserID      int    `json:"user_id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Location    string `json:"location"`
	Preferences string `json:"preferences"`
	ProductID   int    `json:"product_id"`
	Category    string `json:"category"`
	ProductName string `json:"product_name"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// CombinedFeatures returns the item's category and tags space-joined.
// This string is the unit of vectorization for the recommendation model.
func (i Interaction) CombinedFeatures() string {
	return i.Category + " " + i.Tags
}

// InteractionColumns is the header of the `;`-separated interaction feed,
// in wire order.
var InteractionColumns = []string{
	"user_id", "name", "age", "gender", "location", "preferences",
	"product_id", "category", "product_name", "description", "tags",
}

// RecommendedItem is a single entry of a recommendation response.
type RecommendedItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RecommendationResponse is the recommendation API contract:
// an ordered list of items, most similar first.
type RecommendationResponse struct {
	UserID          int               `json:"user_id"`
	Recommendations []RecommendedItem `json:"recommendations"`
}
