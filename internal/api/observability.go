package api

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single backend call.
type CallEvent struct {
	Method    string
	Resource  string
	Status    int
	LatencyMs int64
	Err       error
}

// Observer receives events about backend calls for logging.
type Observer interface {
	OnCall(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCall(CallEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes backend call events to w.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) OnCall(event CallEvent) {
	attrs := []any{
		"method", event.Method,
		"resource", event.Resource,
		"status", event.Status,
		"latency_ms", event.LatencyMs,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.Error("backend_call", attrs...)
		return
	}
	o.logger.Info("backend_call", attrs...)
}
