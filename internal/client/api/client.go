// Package api implements the HTTP client for the ProdHub server API.
//
// Every collection is exposed as a uniform REST resource:
//
//	GET    /api/<collection>       — all records for the session's user
//	POST   /api/<collection>       — create, returns the record with its server id
//	PUT    /api/<collection>/<id>  — update
//	DELETE /api/<collection>/<id>  — delete
package api

import "context"

// Client is the server surface the sync layer depends on. Implemented
// by HTTPClient; tests substitute stubs.
type Client interface {
	// Ping reports server reachability. Any HTTP response, including an
	// auth failure, counts as reachable; only transport errors do not.
	Ping(ctx context.Context) error

	// List returns the raw JSON array for a collection.
	List(ctx context.Context, collection string) ([]byte, error)

	// Create posts a new record and returns the server's JSON echo,
	// which carries the server-assigned identifier.
	Create(ctx context.Context, collection string, record any) ([]byte, error)

	// Update puts a full or partial record at its identifier.
	Update(ctx context.Context, collection, id string, record any) ([]byte, error)

	// Delete removes a record by identifier.
	Delete(ctx context.Context, collection, id string) error
}
