// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen address, the API key, the request body limit, and
// whether the metrics and swagger endpoints are mounted. PublicPaths lists the routes the
// API key middleware lets through.
package server
