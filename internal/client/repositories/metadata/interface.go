// Package metadata persists small key/value records in the local database.
// The session store keeps exactly two keys here: the bearer token and the
// serialized identity.
package metadata

import "context"

// Repository is a key/value store for opaque byte values.
type Repository interface {
	// Get returns the stored value, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key if present.
	Delete(ctx context.Context, key string) error

	// Clear removes every record.
	Clear(ctx context.Context) error
}
