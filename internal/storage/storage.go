package storage

import (
	"context"
	"errors"
)

// Store defines the minimal contract the session layer needs from a
// persistence backend: one opaque blob under one fixed slot, overwritten in
// full on every save.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Close() error
}

// ErrNotFound indicates the store has never been written (or was cleared).
var ErrNotFound = errors.New("session blob not found")
