package normalize

import (
	"encoding/json"

	"go.uber.org/zap"
)

// GenericNormalizer handles providers without a dedicated normalizer.
// It tries, in order: { "products": [...] } and bare arrays with provider2
// field names, then { "success", "data": [...] } with provider3 rules.
type GenericNormalizer struct {
	logger *zap.Logger
}

// NewGenericNormalizer creates a GenericNormalizer.
func NewGenericNormalizer(logger *zap.Logger) *GenericNormalizer {
	return &GenericNormalizer{logger: logger.With(zap.String("normalizer", "generic"))}
}

// ProviderID is empty: the generic normalizer is never registered under an id.
func (n *GenericNormalizer) ProviderID() string {
	return ""
}

// Normalize decodes the first recognised shape.
func (n *GenericNormalizer) Normalize(raw []byte) ([]CanonicalProduct, error) {
	switch firstToken(raw) {
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, shapeError("%v", err)
		}
		if products, ok := envelope["products"]; ok && firstToken(products) == '[' {
			return decodeProvider2Array(n.logger, products)
		}
		if data, ok := envelope["data"]; ok && firstToken(data) == '[' {
			return decodeProvider3Envelope(n.logger, raw)
		}
		return nil, shapeError("no products or data array")
	case '[':
		return decodeProvider2Array(n.logger, raw)
	default:
		return nil, shapeError("unrecognised payload")
	}
}
