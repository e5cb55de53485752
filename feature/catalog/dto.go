package catalog

import (
	"time"

	"catalog-aggregator/feature/catalog/models"

	"github.com/shopspring/decimal"
)

// listHistoryLimit caps the history entries embedded in v1 list responses.
const listHistoryLimit = 10

var hundred = decimal.NewFromInt(100)

// ProductV1 is the v1 representation: the stored product with price as a decimal string.
type ProductV1 struct {
	models.Product
}

// ProductV2 adds history statistics and a numeric price.
type ProductV2 struct {
	models.Product
	Price                 float64    `json:"price"`
	PriceHistoryCount     int        `json:"priceHistoryCount"`
	LastPriceChange       *time.Time `json:"lastPriceChange,omitempty"`
	PriceChangePercentage *float64   `json:"priceChangePercentage,omitempty"`
}

// PageV1 is an offset page in the v1 representation.
type PageV1 struct {
	Data []ProductV1 `json:"data"`
	Meta PageMeta    `json:"meta"`
}

// PageV2 is an offset page in the v2 representation.
type PageV2 struct {
	Data []ProductV2 `json:"data"`
	Meta PageMeta    `json:"meta"`
}

// CursorPageV1 is a cursor page in the v1 representation.
type CursorPageV1 struct {
	Data []ProductV1 `json:"data"`
	Meta CursorMeta  `json:"meta"`
}

// CursorPageV2 is a cursor page in the v2 representation.
type CursorPageV2 struct {
	Data []ProductV2 `json:"data"`
	Meta CursorMeta  `json:"meta"`
}

// toV1 trims embedded history for list responses when truncate is set.
func toV1(p models.Product, truncate bool) ProductV1 {
	if truncate && len(p.PriceHistory) > listHistoryLimit {
		p.PriceHistory = p.PriceHistory[:listHistoryLimit]
	}
	return ProductV1{Product: p}
}

// toV2 expects p.PriceHistory newest first.
func toV2(p models.Product) ProductV2 {
	dto := ProductV2{
		Product:           p,
		Price:             p.Price.InexactFloat64(),
		PriceHistoryCount: len(p.PriceHistory),
	}
	if len(p.PriceHistory) > 0 {
		latest := p.PriceHistory[0]
		changedAt := latest.ChangedAt
		dto.LastPriceChange = &changedAt
		if !latest.OldPrice.IsZero() {
			pct := latest.NewPrice.Sub(latest.OldPrice).Div(latest.OldPrice).Mul(hundred).InexactFloat64()
			dto.PriceChangePercentage = &pct
		}
	}
	return dto
}

func pageV1(p *Page) PageV1 {
	out := PageV1{Data: make([]ProductV1, 0, len(p.Data)), Meta: p.Meta}
	for _, prod := range p.Data {
		out.Data = append(out.Data, toV1(prod, true))
	}
	return out
}

func pageV2(p *Page) PageV2 {
	out := PageV2{Data: make([]ProductV2, 0, len(p.Data)), Meta: p.Meta}
	for _, prod := range p.Data {
		out.Data = append(out.Data, toV2(prod))
	}
	return out
}

func cursorPageV1(p *CursorPage) CursorPageV1 {
	out := CursorPageV1{Data: make([]ProductV1, 0, len(p.Data)), Meta: p.Meta}
	for _, prod := range p.Data {
		out.Data = append(out.Data, toV1(prod, true))
	}
	return out
}

func cursorPageV2(p *CursorPage) CursorPageV2 {
	out := CursorPageV2{Data: make([]ProductV2, 0, len(p.Data)), Meta: p.Meta}
	for _, prod := range p.Data {
		out.Data = append(out.Data, toV2(prod))
	}
	return out
}
