// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the API key used by the auth
// middleware, the request body limit and the graceful shutdown timeout.
// The start command reads it through core/config.
package server
