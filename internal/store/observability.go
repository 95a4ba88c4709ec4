package store

import (
	"context"
	"log/slog"
	"time"
)

// Event captures one remote operation or snapshot write. Failures that a
// store swallows are only visible here.
type Event struct {
	Op        string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

// Observer receives store events.
type Observer interface {
	ObserveStore(ctx context.Context, event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveStore(context.Context, Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes store events to logger: failures at Error, the rest
// at Debug.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) ObserveStore(ctx context.Context, event Event) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"op", event.Op,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "store_op", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "store_op", attrs...)
}
