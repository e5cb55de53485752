package reconcile

import (
	"context"

	"catalog-aggregator/core/events"
	"catalog-aggregator/feature/aggregation/normalize"

	"go.uber.org/zap"
)

// Committer reconciles and persists a provider's products one at a time.
type Committer struct {
	store  Store
	engine *Engine
	logger *zap.Logger
}

// NewCommitter creates a Committer.
func NewCommitter(store Store, engine *Engine, logger *zap.Logger) *Committer {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Committer{store: store, engine: engine, logger: logger}
}

// Commit reconciles every item for providerID. A failed lookup or write skips
// that item only; the remaining items are still committed.
func (c *Committer) Commit(ctx context.Context, providerID string, items []normalize.CanonicalProduct) BatchResult {
	var res BatchResult

	for _, item := range items {
		l := c.logger.With(zap.String("provider", providerID), zap.String("external_id", item.ExternalID))

		existing, err := c.store.FindByNaturalKey(ctx, item.ExternalID, providerID)
		if err != nil {
			l.Error("Failed to look up product", zap.Error(err))
			res.Skipped++
			continue
		}

		d := c.engine.Reconcile(existing, item, providerID)
		if err := c.store.Apply(ctx, d); err != nil {
			l.Error("Failed to commit product", zap.String("action", string(d.Action)), zap.Error(err))
			res.Skipped++
			continue
		}

		res.Committed++
		switch d.Action {
		case ActionCreate:
			res.Created++
		case ActionUpdate:
			res.Updated++
		}

		if d.History != nil {
			res.PriceChanges++
			res.Events = append(res.Events, events.PriceChangeEvent{
				ProductID:       d.Product.ID,
				ExternalID:      d.Product.ExternalID,
				ProviderID:      providerID,
				Name:            d.Product.Name,
				OldPrice:        d.History.OldPrice,
				NewPrice:        d.History.NewPrice,
				Currency:        d.History.Currency,
				OldAvailability: d.History.OldAvailability,
				NewAvailability: d.History.NewAvailability,
				ChangedAt:       d.History.ChangedAt,
			})
			l.Info("Price changed",
				zap.String("old_price", d.History.OldPrice.String()),
				zap.String("new_price", d.History.NewPrice.String()),
			)
		}
	}

	return res
}
