package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Document is a typed view of one key in a Backend.
//
// Load returns the value produced by empty when the key has never been
// written, so first use needs no bootstrap step.
type Document[T any] struct {
	backend Backend
	key     string
	empty   func() T
}

func NewDocument[T any](backend Backend, key string, empty func() T) *Document[T] {
	return &Document[T]{backend: backend, key: key, empty: empty}
}

func (d *Document[T]) Load(ctx context.Context) (T, error) {
	raw, err := d.backend.Get(ctx, d.key)
	if errors.Is(err, ErrNotFound) {
		return d.empty(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", d.key, err)
	}

	v := d.empty()
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", d.key, err)
	}
	return v, nil
}

func (d *Document[T]) Save(ctx context.Context, v T) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.key, err)
	}
	if err := d.backend.Put(ctx, d.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", d.key, err)
	}
	return nil
}
