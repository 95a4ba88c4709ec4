// Package repository provides SQLite-backed persistence for local mode.
package repository

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyKey is returned when a snapshot operation is called without a key.
var ErrEmptyKey = errors.New("snapshot key is empty")

// Snapshot is a stored value together with its last write time.
type Snapshot struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// SnapshotRepo is a string key-value store for serialized application state.
type SnapshotRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Snapshot, error)
}
