// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation. An empty key disables it; health, readiness,
//     metrics and swagger paths stay public.
//   - rayid: assigns every request a ray id (reusing X-Ray-ID when present),
//     stores it in the context locals and echoes it in the response headers.
//
// Request metrics are recorded by core/metrics.
package middleware
