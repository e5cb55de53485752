// Package catalog stores and serves the reconciled product catalog.
//
// Repository is the write side used by reconciliation: natural-key lookup,
// transactional create or update with price history, and the staleness sweep.
// QueryService is the read side and never mutates.
//
// # Pagination
//
// Offset pages skip (page-1)*limit rows ordered by the sort field with id as
// tiebreaker. Total and page rows are loaded concurrently.
//
// Cursor pages use the ID of the last row of the previous page as the cursor.
// The cursor row's sort value is loaded and the next limit+1 rows strictly
// beyond (value, id) are fetched; the extra row only signals hasNextPage.
//
// Sort fields are whitelisted: name, price, lastUpdated and createdAt.
//
// # Routes
//
//	GET /v1/products                 offset page
//	GET /v1/products/cursor          cursor page
//	GET /v1/products/changes/recent  recent changes (hours, default 24)
//	GET /v1/products/:id             product with full history
//
// The /v2 routes return the same data with a numeric price and history
// statistics (priceHistoryCount, lastPriceChange, priceChangePercentage).
package catalog
