package catalog

import (
	"catalog-aggregator/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 20
	MaxLimit         = 100
	DefaultSortBy    = "lastUpdated"
	DefaultSortOrder = "desc"
	DefaultHours     = 24
)

// sortColumns whitelists sortable fields, mapping API names to columns.
var sortColumns = map[string]string{
	"name":        "name",
	"price":       "price",
	"lastUpdated": "last_updated",
	"createdAt":   "created_at",
}

// OffsetQuery selects one page of products by page number.
type OffsetQuery struct {
	Page      int    `query:"page" validate:"min=1"`
	Limit     int    `query:"limit" validate:"min=1,max=100"`
	SortBy    string `query:"sortBy" validate:"oneof=name price lastUpdated createdAt"`
	SortOrder string `query:"sortOrder" validate:"oneof=asc desc"`
}

// DefaultOffsetQuery returns the first page with default sorting.
func DefaultOffsetQuery() OffsetQuery {
	return OffsetQuery{Page: DefaultPage, Limit: DefaultLimit, SortBy: DefaultSortBy, SortOrder: DefaultSortOrder}
}

func (q OffsetQuery) withDefaults() OffsetQuery {
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if q.SortOrder == "" {
		q.SortOrder = DefaultSortOrder
	}
	return q
}

// CursorQuery selects the products following a cursor.
// Cursor is the ID of the last product of the previous page; empty starts at the beginning.
type CursorQuery struct {
	Limit     int    `query:"limit" validate:"min=1,max=100"`
	Cursor    string `query:"cursor" validate:"omitempty,max=64"`
	SortBy    string `query:"sortBy" validate:"oneof=name price lastUpdated createdAt"`
	SortOrder string `query:"sortOrder" validate:"oneof=asc desc"`
}

// DefaultCursorQuery returns the first cursor page with default sorting.
func DefaultCursorQuery() CursorQuery {
	return CursorQuery{Limit: DefaultLimit, SortBy: DefaultSortBy, SortOrder: DefaultSortOrder}
}

func (q CursorQuery) withDefaults() CursorQuery {
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if q.SortOrder == "" {
		q.SortOrder = DefaultSortOrder
	}
	return q
}

// PageMeta describes an offset page.
type PageMeta struct {
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	Total           int64 `json:"total"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	NextPage        *int  `json:"nextPage,omitempty"`
	PreviousPage    *int  `json:"previousPage,omitempty"`
}

// NewPageMeta computes navigation for page of size limit over total rows.
func NewPageMeta(page, limit int, total int64) PageMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	meta := PageMeta{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
	if meta.HasNextPage {
		next := page + 1
		meta.NextPage = &next
	}
	if meta.HasPreviousPage {
		prev := page - 1
		meta.PreviousPage = &prev
	}
	return meta
}

// CursorMeta describes a cursor page.
type CursorMeta struct {
	Limit         int     `json:"limit"`
	Total         int64   `json:"total"`
	HasNextPage   bool    `json:"hasNextPage"`
	NextCursor    *string `json:"nextCursor,omitempty"`
	CurrentCursor *string `json:"currentCursor,omitempty"`
}

// Page is one offset page of products.
type Page struct {
	Data []models.Product `json:"data"`
	Meta PageMeta         `json:"meta"`
}

// CursorPage is one cursor page of products.
type CursorPage struct {
	Data []models.Product `json:"data"`
	Meta CursorMeta       `json:"meta"`
}

// orderBy sorts by column with id as tiebreaker in the same direction.
func orderBy(column string, desc bool) clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: column}, Desc: desc},
		{Column: clause.Column{Name: "id"}, Desc: desc},
	}}
}

// afterKey restricts rows to those strictly beyond the anchor in (column, id) order.
func afterKey(db *gorm.DB, column string, desc bool, value any, id string) *gorm.DB {
	op := ">"
	if desc {
		op = "<"
	}
	col := clause.Column{Name: column}
	return db.Where(
		db.Session(&gorm.Session{NewDB: true}).
			Where(clause.Expr{SQL: "? "+op+" ?", Vars: []any{col, value}}).
			Or(clause.Expr{SQL: "? = ? AND ? "+op+" ?", Vars: []any{col, value, clause.Column{Name: "id"}, id}}),
	)
}

// sortValue returns the anchor's value for the sort field.
func sortValue(p models.Product, sortBy string) any {
	switch sortBy {
	case "name":
		return p.Name
	case "price":
		return p.Price
	case "createdAt":
		return p.CreatedAt
	default:
		return p.LastUpdated
	}
}
