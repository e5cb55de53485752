package reconcile

import (
	"context"

	"catalog-aggregator/core/events"
	"catalog-aggregator/feature/catalog/models"
)

// ActionType is the store mutation chosen for an incoming product.
type ActionType string

const (
	// ActionCreate inserts a product seen for the first time.
	ActionCreate ActionType = "create"
	// ActionUpdate overwrites an existing product.
	ActionUpdate ActionType = "update"
)

// Decision is the outcome of reconciling one incoming product.
type Decision struct {
	// Action is the mutation to apply.
	Action ActionType

	// Product is the full row to write. For updates it keeps the stored ID,
	// CreatedAt and IsStale.
	Product models.Product

	// History is set when the price changed. It must be written together
	// with the update.
	History *models.PriceHistoryEntry
}

// Store is the persistence capability reconciliation needs.
type Store interface {
	// FindByNaturalKey returns the product for (externalID, providerID),
	// or nil without error when absent.
	FindByNaturalKey(ctx context.Context, externalID, providerID string) (*models.Product, error)

	// Apply writes a decision atomically.
	Apply(ctx context.Context, d Decision) error
}

// BatchResult summarises the commit of one provider's products.
type BatchResult struct {
	// Committed counts products written successfully.
	Committed int `json:"committed"`

	// Created counts new products.
	Created int `json:"created"`

	// Updated counts overwritten products.
	Updated int `json:"updated"`

	// PriceChanges counts history entries written.
	PriceChanges int `json:"priceChanges"`

	// Skipped counts products whose lookup or write failed.
	Skipped int `json:"skipped"`

	// Events holds one price-change event per history entry written.
	Events []events.PriceChangeEvent `json:"-"`
}
