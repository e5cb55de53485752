// Package events publishes catalog price changes to Kafka.
//
// Every price history entry recorded during aggregation becomes one
// PriceChangeEvent, JSON encoded and keyed by product ID. Publishing is
// best-effort: the aggregation pipeline logs failures and carries on.
//
// When events.enabled is false, NewPublisher returns a NoopPublisher so callers
// never branch on configuration.
package events
