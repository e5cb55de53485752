package normalize

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CanonicalProduct is a provider item translated into the shared catalog shape.
type CanonicalProduct struct {
	ExternalID   string          `json:"externalId"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Availability bool            `json:"availability"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

var (
	// ErrUnexpectedShape reports a payload whose structure does not match the provider's schema.
	ErrUnexpectedShape = errors.New("unexpected payload shape")
	// ErrProviderUnsuccessful reports a payload in which the provider flagged failure.
	ErrProviderUnsuccessful = errors.New("provider reported unsuccessful response")
	// ErrMissingField reports an item lacking a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrNegativePrice reports an item with a price below zero.
	ErrNegativePrice = errors.New("negative price")
)

// rawItem is the provider-neutral view of an item before validation.
type rawItem struct {
	ExternalID   *string
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Currency     *string
	Availability bool
	LastUpdated  *string
}

func (r rawItem) canonical() (CanonicalProduct, error) {
	externalID := trimmed(r.ExternalID)
	if externalID == "" {
		return CanonicalProduct{}, fmt.Errorf("%w: externalId", ErrMissingField)
	}
	name := trimmed(r.Name)
	if name == "" {
		return CanonicalProduct{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if r.Price == nil {
		return CanonicalProduct{}, fmt.Errorf("%w: price", ErrMissingField)
	}
	if r.Price.IsNegative() {
		return CanonicalProduct{}, fmt.Errorf("%w: %s", ErrNegativePrice, r.Price.String())
	}
	currency := strings.ToUpper(trimmed(r.Currency))
	if currency == "" {
		return CanonicalProduct{}, fmt.Errorf("%w: currency", ErrMissingField)
	}
	if r.LastUpdated == nil || strings.TrimSpace(*r.LastUpdated) == "" {
		return CanonicalProduct{}, fmt.Errorf("%w: lastUpdated", ErrMissingField)
	}
	lastUpdated, err := parseTimestamp(*r.LastUpdated)
	if err != nil {
		return CanonicalProduct{}, err
	}

	return CanonicalProduct{
		ExternalID:   externalID,
		Name:         name,
		Description:  r.Description,
		Price:        *r.Price,
		Currency:     currency,
		Availability: r.Availability,
		LastUpdated:  lastUpdated,
	}, nil
}

// collect validates items, dropping and logging the ones that fail.
func collect(logger *zap.Logger, items []rawItem) []CanonicalProduct {
	out := make([]CanonicalProduct, 0, len(items))
	for i, item := range items {
		p, err := item.canonical()
		if err != nil {
			logger.Warn("Dropping invalid item", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid lastUpdated %q: %w", s, err)
	}
	return t.UTC(), nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// firstToken returns the first non-whitespace byte of a JSON document, or 0.
func firstToken(raw []byte) byte {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

func shapeError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedShape, fmt.Sprintf(format, args...))
}
