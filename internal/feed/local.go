// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package feed

import (
	"context"

	"github.com/shoprec/shoprec/internal/models"
)

// InteractionSource produces the interaction table in-process.
type InteractionSource interface {
	Interactions() ([]models.Interaction, error)
}

// LocalClient serves the feed straight from an in-process source,
// typically the entity store. Used when no upstream feed URL is
// configured and Shoprec is its own user-data service.
type LocalClient struct {
	src InteractionSource
}

// NewLocalClient wraps src as a Client.
func NewLocalClient(src InteractionSource) *LocalClient {
	return &LocalClient{src: src}
}

// Interactions returns the source's current interaction table.
func (c *LocalClient) Interactions(ctx context.Context) ([]models.Interaction, error) {
	return c.src.Interactions()
}
