package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// RunEvent captures lightweight telemetry for one service operation,
// such as an allocation run or a snapshot import.
type RunEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

// RunObserver receives service operation events.
type RunObserver interface {
	ObserveRun(ctx context.Context, event RunEvent)
}

// NoopRunObserver ignores all events.
type NoopRunObserver struct{}

func (NoopRunObserver) ObserveRun(context.Context, RunEvent) {}

type logRunObserver struct {
	logger *slog.Logger
}

// NewLogRunObserver writes service operation events to the provided writer.
func NewLogRunObserver(w io.Writer) RunObserver {
	if w == nil {
		return NoopRunObserver{}
	}
	return &logRunObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logRunObserver) ObserveRun(ctx context.Context, event RunEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"operation", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_operation", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_operation", attrs...)
}

func runObserverOrNoop(observers []RunObserver) RunObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopRunObserver{}
}
