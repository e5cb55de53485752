package normalize

import (
	"encoding/json"

	"catalog-aggregator/core/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Provider3ID identifies the UPPERCASE envelope provider.
const Provider3ID = "provider3"

type provider3Item struct {
	ID          *string          `json:"ID"`
	Name        *string          `json:"NAME"`
	Description *string          `json:"DESCRIPTION"`
	Price       *decimal.Decimal `json:"PRICE"`
	Currency    *string          `json:"CURRENCY"`
	Available   any              `json:"AVAILABLE"`
	LastUpdate  *string          `json:"LAST_UPDATE"`
}

func (it provider3Item) raw() rawItem {
	return rawItem{
		ExternalID:   it.ID,
		Name:         it.Name,
		Description:  it.Description,
		Price:        it.Price,
		Currency:     it.Currency,
		Availability: utils.ToBool(it.Available),
		LastUpdated:  it.LastUpdate,
	}
}

// Provider3Normalizer reads { "success", "count", "data": [...] } payloads.
type Provider3Normalizer struct {
	logger *zap.Logger
}

// NewProvider3Normalizer creates a Provider3Normalizer.
func NewProvider3Normalizer(logger *zap.Logger) *Provider3Normalizer {
	return &Provider3Normalizer{logger: logger.With(zap.String("normalizer", Provider3ID))}
}

// ProviderID returns the provider handled.
func (n *Provider3Normalizer) ProviderID() string {
	return Provider3ID
}

// Normalize decodes the payload. A falsy success flag yields ErrProviderUnsuccessful.
func (n *Provider3Normalizer) Normalize(raw []byte) ([]CanonicalProduct, error) {
	return decodeProvider3Envelope(n.logger, raw)
}

// decodeProvider3Envelope reads { "success", "count", "data": [...] }.
// A falsy or absent success flag yields ErrProviderUnsuccessful.
func decodeProvider3Envelope(logger *zap.Logger, raw []byte) ([]CanonicalProduct, error) {
	if firstToken(raw) != '{' {
		return nil, shapeError("expected object")
	}

	var envelope struct {
		Success any             `json:"success"`
		Count   any             `json:"count"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, shapeError("%v", err)
	}
	if !utils.ToBool(envelope.Success) {
		return nil, ErrProviderUnsuccessful
	}
	if firstToken(envelope.Data) != '[' {
		return nil, shapeError("missing data array")
	}

	products, err := decodeProvider3Array(logger, envelope.Data)
	if err != nil {
		return nil, err
	}
	if envelope.Count != nil && utils.ToInt(envelope.Count) != len(products) {
		logger.Debug("Item count differs from declared count",
			zap.Int("declared", utils.ToInt(envelope.Count)),
			zap.Int("normalized", len(products)),
		)
	}
	return products, nil
}

func decodeProvider3Array(logger *zap.Logger, raw []byte) ([]CanonicalProduct, error) {
	var list []provider3Item
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, shapeError("%v", err)
	}

	items := make([]rawItem, 0, len(list))
	for _, it := range list {
		items = append(items, it.raw())
	}
	return collect(logger, items), nil
}
