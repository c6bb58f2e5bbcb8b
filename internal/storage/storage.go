// Package storage provides the key-value backends the store mirrors its
// collections to. Each collection lives under a fixed key as a JSON blob;
// a Set followed by a Get returns the exact bytes written.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
