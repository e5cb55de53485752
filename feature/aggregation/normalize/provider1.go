package normalize

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Provider1ID identifies the snake_case catalog provider.
const Provider1ID = "provider1"

type provider1Payload struct {
	Catalog *struct {
		Items *[]provider1Item `json:"items"`
	} `json:"catalog"`
}

type provider1Item struct {
	ProductID   *string `json:"product_id"`
	ProductName *string `json:"product_name"`
	ProductDesc *string `json:"product_desc"`
	Pricing     *struct {
		Amount       *decimal.Decimal `json:"amount"`
		CurrencyCode *string          `json:"currency_code"`
	} `json:"pricing"`
	Stock *struct {
		InStock bool `json:"in_stock"`
	} `json:"stock"`
	LastModified *string `json:"last_modified"`
}

// Provider1Normalizer reads { "catalog": { "items": [...] } } payloads.
type Provider1Normalizer struct {
	logger *zap.Logger
}

// NewProvider1Normalizer creates a Provider1Normalizer.
func NewProvider1Normalizer(logger *zap.Logger) *Provider1Normalizer {
	return &Provider1Normalizer{logger: logger.With(zap.String("normalizer", Provider1ID))}
}

// ProviderID returns the provider handled.
func (n *Provider1Normalizer) ProviderID() string {
	return Provider1ID
}

// Normalize decodes the payload.
func (n *Provider1Normalizer) Normalize(raw []byte) ([]CanonicalProduct, error) {
	if firstToken(raw) != '{' {
		return nil, shapeError("expected object")
	}

	var payload provider1Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, shapeError("%v", err)
	}
	if payload.Catalog == nil || payload.Catalog.Items == nil {
		return nil, shapeError("missing catalog.items")
	}

	items := make([]rawItem, 0, len(*payload.Catalog.Items))
	for _, it := range *payload.Catalog.Items {
		r := rawItem{
			ExternalID:  it.ProductID,
			Name:        it.ProductName,
			Description: it.ProductDesc,
			LastUpdated: it.LastModified,
		}
		if it.Pricing != nil {
			r.Price = it.Pricing.Amount
			r.Currency = it.Pricing.CurrencyCode
		}
		if it.Stock != nil {
			r.Availability = it.Stock.InStock
		}
		items = append(items, r)
	}

	return collect(n.logger, items), nil
}
