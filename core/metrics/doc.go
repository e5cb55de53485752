// Package metrics exposes Prometheus instrumentation for the service.
//
// Collectors are registered on the default registry at init. HTTP traffic is
// recorded by Middleware, labelled by route pattern and status class. The
// aggregation pipeline records fetches, commits, price changes, run duration
// and the staleness sweep. Handler serves /metrics.
package metrics
