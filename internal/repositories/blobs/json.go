package blobs

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON decodes the document stored under key into a T.
// found is false when the key is absent, in which case v is the zero value.
func LoadJSON[T any](ctx context.Context, r Repository, key string) (v T, found bool, err error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return v, false, err
	}
	if raw == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode blob[%s]: %w", key, err)
	}
	return v, true, nil
}

// SaveJSON encodes v and stores it under key in one write.
func SaveJSON[T any](ctx context.Context, r Repository, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode blob[%s]: %w", key, err)
	}
	return r.Set(ctx, key, raw)
}
