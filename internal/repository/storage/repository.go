// Package storage is the durable key to serialized-JSON store backing carts,
// saved-for-later sets, checkout state and order confirmations.
package storage

import "context"

// Repository is a key→JSON document store. Get returns domain.ErrNotFound
// for a missing key; callers treat missing or corrupt values as empty state,
// never as a fatal condition.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
