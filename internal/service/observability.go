package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"
)

// UseCaseEvent describes one finished service call. Fields carries
// use-case specific counters such as task_count or diagnostic_count.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// ObserverFunc adapts a plain function to UseCaseObserver.
type ObserverFunc func(ctx context.Context, event UseCaseEvent)

func (f ObserverFunc) ObserveUseCase(ctx context.Context, event UseCaseEvent) { f(ctx, event) }

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes one slog text record per event to w.
// Fields are emitted in key order so records diff cleanly between runs.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, 8+len(keys)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for _, k := range keys {
		attrs = append(attrs, k, event.Fields[k])
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

// fanout delivers each event to every observer in order.
type fanout []UseCaseObserver

func (f fanout) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range f {
		obs.ObserveUseCase(ctx, event)
	}
}

// combineObservers drops nil entries. It returns the noop observer for an
// empty list and the sole observer unwrapped when only one remains.
func combineObservers(observers []UseCaseObserver) UseCaseObserver {
	var live fanout
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}
