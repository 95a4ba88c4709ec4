// Package store holds the estimate and template aggregates. Each store owns
// its collection, hands out deep copies, and decides where changes are
// persisted.
package store

import (
	"context"
	"time"
)

// SnapshotStore is the durable key-value store used in local mode.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// AuthSignal reports whether the user is signed in.
type AuthSignal interface {
	Present() bool
}

// Option configures a store.
type Option func(*options)

type options struct {
	now      func() time.Time
	observer Observer
}

func defaultOptions() options {
	return options{
		now:      func() time.Time { return time.Now().UTC() },
		observer: NoopObserver{},
	}
}

// WithClock replaces the time source used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithObserver sets the observer that receives store events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// observe runs fn and reports it as op. fn may add fields.
func observe(ctx context.Context, obs Observer, op string, fields map[string]any, fn func() error) error {
	startedAt := time.Now()
	err := fn()
	obs.ObserveStore(ctx, Event{
		Op:        op,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
	return err
}
