package reconcile

import (
	"time"

	"catalog-aggregator/feature/aggregation/normalize"
	"catalog-aggregator/feature/catalog/models"
)

// Decide reconciles an incoming product against the stored one.
//
// A nil existing product yields a create. Otherwise the result is always an
// update overwriting every provider-supplied field, and a history entry is
// attached when the price differs by value. Availability changes alone are
// not recorded in history.
func Decide(existing *models.Product, incoming normalize.CanonicalProduct, providerID string, now time.Time) Decision {
	product := models.Product{
		ExternalID:   incoming.ExternalID,
		ProviderID:   providerID,
		Name:         incoming.Name,
		Description:  incoming.Description,
		Price:        incoming.Price,
		Currency:     incoming.Currency,
		Availability: incoming.Availability,
		LastUpdated:  incoming.LastUpdated,
	}

	if existing == nil {
		return Decision{Action: ActionCreate, Product: product}
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	product.IsStale = existing.IsStale

	d := Decision{Action: ActionUpdate, Product: product}
	if !existing.Price.Equal(incoming.Price) {
		d.History = &models.PriceHistoryEntry{
			ProductID:       existing.ID,
			OldPrice:        existing.Price,
			NewPrice:        incoming.Price,
			OldAvailability: existing.Availability,
			NewAvailability: incoming.Availability,
			Currency:        incoming.Currency,
			ChangeType:      models.ChangeTypePriceChange,
			ChangedAt:       now,
		}
	}
	return d
}

// Engine applies Decide with an injected clock.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an Engine. A nil clock uses time.Now in UTC.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{now: now}
}

// Reconcile is Decide at the engine's current time.
func (e *Engine) Reconcile(existing *models.Product, incoming normalize.CanonicalProduct, providerID string) Decision {
	return Decide(existing, incoming, providerID, e.now())
}
