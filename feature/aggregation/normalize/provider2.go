package normalize

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Provider2ID identifies the camelCase provider.
const Provider2ID = "provider2"

type provider2Item struct {
	ItemID       *string          `json:"itemId"`
	Title        *string          `json:"title"`
	Details      *string          `json:"details"`
	Cost         *decimal.Decimal `json:"cost"`
	CurrencyType *string          `json:"currencyType"`
	IsAvailable  bool             `json:"isAvailable"`
	UpdatedAt    *string          `json:"updatedAt"`
}

func (it provider2Item) raw() rawItem {
	return rawItem{
		ExternalID:   it.ItemID,
		Name:         it.Title,
		Description:  it.Details,
		Price:        it.Cost,
		Currency:     it.CurrencyType,
		Availability: it.IsAvailable,
		LastUpdated:  it.UpdatedAt,
	}
}

// Provider2Normalizer reads bare arrays or { "products": [...] } payloads.
type Provider2Normalizer struct {
	logger *zap.Logger
}

// NewProvider2Normalizer creates a Provider2Normalizer.
func NewProvider2Normalizer(logger *zap.Logger) *Provider2Normalizer {
	return &Provider2Normalizer{logger: logger.With(zap.String("normalizer", Provider2ID))}
}

// ProviderID returns the provider handled.
func (n *Provider2Normalizer) ProviderID() string {
	return Provider2ID
}

// Normalize decodes the payload.
func (n *Provider2Normalizer) Normalize(raw []byte) ([]CanonicalProduct, error) {
	switch firstToken(raw) {
	case '[':
		return decodeProvider2Array(n.logger, raw)
	case '{':
		var envelope struct {
			Products json.RawMessage `json:"products"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, shapeError("%v", err)
		}
		if firstToken(envelope.Products) != '[' {
			return nil, shapeError("missing products array")
		}
		return decodeProvider2Array(n.logger, envelope.Products)
	default:
		return nil, shapeError("expected array or object")
	}
}

func decodeProvider2Array(logger *zap.Logger, raw []byte) ([]CanonicalProduct, error) {
	var list []provider2Item
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, shapeError("%v", err)
	}

	items := make([]rawItem, 0, len(list))
	for _, it := range list {
		items = append(items, it.raw())
	}
	return collect(logger, items), nil
}
