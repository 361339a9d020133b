package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/pulse/internal/app"
)

// UseCaseEvent is one finished analytics or import call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Code      app.AnalyticsErrorCode
	Fields    map[string]any
}

// Success reports whether the call returned without error.
func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives use-case events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver drops every event.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes one service_use_case record per event to w.
// Calls rejected with an analytics code log at WARN; other failures at ERROR.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

// ObserverFor returns a log observer on w when enabled, else a no-op.
func ObserverFor(enabled bool, w io.Writer) UseCaseObserver {
	if !enabled {
		return NoopUseCaseObserver{}
	}
	return NewLogUseCaseObserver(w)
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success(),
	)
	for _, k := range sortedKeys(event.Fields) {
		attrs = append(attrs, k, event.Fields[k])
	}

	switch {
	case event.Err == nil:
		o.logger.InfoContext(ctx, "service_use_case", attrs...)
	case event.Code != "":
		attrs = append(attrs, "code", string(event.Code), "error", event.Err.Error())
		o.logger.WarnContext(ctx, "service_use_case", attrs...)
	default:
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// track starts a use case; the returned func reports it with the final
// error. Callers may add to fields until then.
func track(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(err error) {
	startedAt := time.Now().UTC()
	return func(err error) {
		event := UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Err:       err,
			Fields:    fields,
		}
		var ae *app.AnalyticsError
		if errors.As(err, &ae) {
			event.Code = ae.Code
		}
		obs.ObserveUseCase(ctx, event)
	}
}
