// Package normalize translates provider payloads into CanonicalProduct values.
//
// Each known provider has its own Normalizer implementation, one file per wire
// shape. The Registry dispatches by provider id and falls back to the
// GenericNormalizer for ids it does not know. Adding a provider means adding a
// Normalizer and registering it.
//
// # Failure handling
//
// Registry.Normalize never returns an error and never panics. A payload whose
// structure does not match (missing container, wrong JSON types, provider
// success flag off) produces an empty slice and a warning. A well-formed item
// missing a required field, carrying a negative price or an unparsable
// timestamp is dropped on its own; the rest of the payload survives.
//
// # Field rules
//
//   - Prices decode from the JSON number text into decimal.Decimal.
//   - Currencies are trimmed and upper-cased.
//   - Timestamps are RFC 3339 and converted to UTC.
//   - Description is nil when absent or null; an empty string is kept.
package normalize
