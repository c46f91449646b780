// Package metadata is the durable key-value blob store. On the relational
// backend it is a table; on the key-value backend it is a JSON file and
// holds every collection.
package metadata

import (
	"context"
)

// Repository stores opaque values under string keys. Get on an absent key
// returns (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
