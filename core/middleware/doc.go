// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: Validates the API key sent in X-API-Key or as a bearer token.
//   - rayid: Tags every request with a ray id, kept in locals and echoed in X-Ray-ID.
//
// These middleware components are designed to be registered globally or per-route group
// in the main application setup.
package middleware
