package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChangeTypePriceChange is the only recorded change type.
const ChangeTypePriceChange = "price_change"

// Product is the reconciled catalog record for one provider's item.
// (ExternalID, ProviderID) is unique and is the upsert key.
type Product struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	ExternalID   string          `gorm:"type:varchar(191);not null;uniqueIndex:idx_products_natural_key,priority:1" json:"externalId"`
	ProviderID   string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_natural_key,priority:2;index" json:"providerId"`
	Name         string          `gorm:"type:varchar(512);not null" json:"name"`
	Description  *string         `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"price"`
	Currency     string          `gorm:"type:varchar(10);not null" json:"currency"`
	Availability bool            `gorm:"not null" json:"availability"`
	LastUpdated  time.Time       `gorm:"not null;index" json:"lastUpdated"`
	IsStale      bool            `gorm:"not null;index" json:"isStale"`
	CreatedAt    time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`

	PriceHistory []PriceHistoryEntry `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"priceHistory,omitempty"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a UUID when none is set.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PriceHistoryEntry records one observed price change. Entries are append-only.
type PriceHistoryEntry struct {
	ID              string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProductID       string          `gorm:"type:varchar(36);not null;index" json:"productId"`
	OldPrice        decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"oldPrice"`
	NewPrice        decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"newPrice"`
	OldAvailability bool            `gorm:"not null" json:"oldAvailability"`
	NewAvailability bool            `gorm:"not null" json:"newAvailability"`
	Currency        string          `gorm:"type:varchar(10);not null" json:"currency"`
	ChangeType      string          `gorm:"type:varchar(32);not null" json:"changeType"`
	ChangedAt       time.Time       `gorm:"not null;index" json:"changedAt"`
}

// TableName overrides the table name.
func (PriceHistoryEntry) TableName() string {
	return "price_history"
}

// BeforeCreate assigns a UUID when none is set.
func (e *PriceHistoryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// All lists the models managed by migrations.
func All() []any {
	return []any{&Product{}, &PriceHistoryEntry{}}
}

// RequiredColumns lists, per table, the columns the service reads and writes.
func RequiredColumns() map[string][]string {
	return map[string][]string{
		"products": {
			"id", "external_id", "provider_id", "name", "description", "price",
			"currency", "availability", "last_updated", "is_stale", "created_at", "updated_at",
		},
		"price_history": {
			"id", "product_id", "old_price", "new_price", "old_availability",
			"new_availability", "currency", "change_type", "changed_at",
		},
	}
}
