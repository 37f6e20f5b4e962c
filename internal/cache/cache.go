// Package cache stores fetched controller payloads between runs so an
// unchanged inventory source needs zero remote calls.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Cache is the minimal key-value surface the pipeline needs. A missing
// entry is ok=false, not an error; backend failures are errors and
// abort the run.
type Cache interface {
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Set(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// hashKey flattens an arbitrary cache key (the inventory source path)
// into something safe for filenames and valkey keys alike.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:16])
}
