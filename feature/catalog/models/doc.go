// Package models defines the persisted catalog entities.
//
// Product holds the reconciled state of one provider item, keyed by the
// natural key (external_id, provider_id). PriceHistoryEntry rows are appended
// whenever a reconciliation observes a different price and are never updated.
//
// Prices are decimal(18,6) columns carried as shopspring/decimal values so
// comparisons are exact.
package models
