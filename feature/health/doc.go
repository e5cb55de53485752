// Package health exposes liveness and readiness endpoints. Readiness pings the
// catalog database and checks its tables for the columns the service relies on.
package health
