// Package reconcile decides how an incoming canonical product changes the
// persisted catalog and commits those decisions.
//
// # Decisions
//
// Decide is pure. A product not yet stored under its natural key
// (externalId, providerId) is created verbatim. A stored product is always
// updated with every incoming field (last write wins), keeping its ID,
// creation time and stale flag. When the stored and incoming prices differ by
// value a PriceHistoryEntry carrying both prices and both availability flags
// is attached to the update. Prices compare with decimal.Equal, so 89.90 and
// 89.9 are the same price.
//
// # Committing
//
// Committer looks each product up through the Store, decides, and applies the
// decision. Update and history insert are applied atomically by the Store. A
// failure on one product is logged and skipped.
package reconcile
