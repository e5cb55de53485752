package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-aggregator/feature/aggregation/reconcile"
	"catalog-aggregator/feature/catalog/models"

	"gorm.io/gorm"
)

// Repository persists reconciliation decisions. It implements reconcile.Store.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByNaturalKey returns the product for (externalID, providerID), or nil when absent.
func (r *Repository) FindByNaturalKey(ctx context.Context, externalID, providerID string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Where("external_id = ? AND provider_id = ?", externalID, providerID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s/%s: %w", providerID, externalID, err)
	}
	return &p, nil
}

// Apply writes a decision in one transaction: the product insert or update,
// plus the history entry when present.
func (r *Repository) Apply(ctx context.Context, d reconcile.Decision) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := d.Product

		switch d.Action {
		case reconcile.ActionCreate:
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}
		case reconcile.ActionUpdate:
			if p.ID == "" {
				return errors.New("update without product id")
			}
			// Select("*") writes zero values too (availability false, nil description).
			res := tx.Model(&p).Select("*").Omit("CreatedAt", "PriceHistory").Updates(&p)
			if res.Error != nil {
				return fmt.Errorf("failed to update product %s: %w", p.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("failed to update product %s: %w", p.ID, ErrNotFound)
			}
		default:
			return fmt.Errorf("unknown action %q", d.Action)
		}

		if d.History != nil {
			h := *d.History
			h.ProductID = p.ID
			if err := tx.Create(&h).Error; err != nil {
				return fmt.Errorf("failed to record price history for %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// MarkStale flags products not refreshed since cutoff and clears the flag on
// products refreshed after it. It returns the number of products newly flagged.
// UpdateColumn leaves updated_at untouched.
func (r *Repository) MarkStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var marked int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("updated_at < ? AND is_stale = ?", cutoff, false).
			UpdateColumn("is_stale", true)
		if res.Error != nil {
			return res.Error
		}
		marked = res.RowsAffected

		return tx.Model(&models.Product{}).
			Where("updated_at >= ? AND is_stale = ?", cutoff, true).
			UpdateColumn("is_stale", false).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to mark stale products: %w", err)
	}
	return marked, nil
}
