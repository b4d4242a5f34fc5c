// Package gateway is the HTTP client for the upstream experience REST services.
//
// Every section of an experience is stored by its own resource collection. The client
// offers the four calls the reconciliation engine needs (List, Create, Update, Delete)
// and leaves paths and payloads to the feature packages.
//
// # Errors
//
// Error statuses come back as *APIError. A 404 matches ErrNotFound, so deletes of
// resources that are already gone can be detected with IsNotFound.
//
// # Usage
//
//	client := gateway.New(cfg.Gateway)
//	loc, err := client.Create(ctx, gateway.Path("experiences", eid, "options"), payload)
//	id, err := gateway.IDFromLocation(loc)
package gateway
