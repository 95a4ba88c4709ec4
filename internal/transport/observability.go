package transport

import (
	"context"
	"log/slog"
)

// RequestEvent records metadata about a single backend request.
type RequestEvent struct {
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	Err       error
}

// Observer receives events about backend requests.
type Observer interface {
	OnRequest(ctx context.Context, event RequestEvent)
}

// LogObserver writes request events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer backed by logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnRequest(ctx context.Context, event RequestEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"latency_ms", event.LatencyMs,
	}
	if event.Err != nil {
		attrs = append(attrs, "error_code", errorCode(event.Err), "error", event.Err.Error())
		o.logger.WarnContext(ctx, "api_request", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "api_request", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnRequest(context.Context, RequestEvent) {}
