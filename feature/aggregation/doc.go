// Package aggregation pulls product catalogs from the configured providers and
// feeds them through normalization and reconciliation.
//
// The Orchestrator processes providers sequentially; a failing or panicking
// provider is reported in its ProviderResult and never affects the others.
// The Scheduler drives the Orchestrator at a fixed cadence, serializes manual
// runs, and sweeps stale products after each run. Raw payloads can be archived
// to object storage and replayed with ArchiveFetcher.
package aggregation
