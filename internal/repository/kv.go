package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KV.Get for absent keys. Stores treat it as
// "empty collection", never as a failure.
var ErrKeyNotFound = errors.New("storage key not found")

// KV abstracts the blob store the review collections persist into. The core
// does not care whether it is durable; implementations range from an
// in-memory map to a SQL-backed table. Load/save are whole-collection
// read-modify-write, so hosts with concurrent callers must serialize writes
// per key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
