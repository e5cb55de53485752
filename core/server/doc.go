// Package server holds the HTTP server configuration and constants.
//
// The start command builds the Fiber application; this package defines the
// settings it reads: the listen port, the optional API key and the deployment
// environment.
//
// # Configuration
//
// An empty ApiKey disables authentication. Environment must be one of
// development, production or test; the start command refuses anything else.
package server
