// Package storage persists whole named documents (the friend graph, the
// user list) in one of several interchangeable backends.
//
// Each backend stores opaque bytes under a string key. A Put must be durable
// before it returns. Document layers JSON encoding on top of a backend.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing has been stored under the key.
var ErrNotFound = errors.New("document not found")

// Backend is the byte-level persistence contract.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
