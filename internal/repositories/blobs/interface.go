// Package blobs is the key-value partition every collection is stored in.
// Each key holds one JSON document; collections are read and written whole.
package blobs

import (
	"context"
	"slices"
)

// Repository stores opaque values by key.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// Lock serialises read-modify-write cycles on keys until the enclosing
	// transaction ends. Call it first thing inside dbx.WithTx.
	Lock(ctx context.Context, keys ...string) error
}

// lockOrder returns keys sorted and deduplicated, so every caller takes
// locks in the same order.
func lockOrder(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
