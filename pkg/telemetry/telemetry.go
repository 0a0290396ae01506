// Package telemetry connects transition and slideshow steps to OpenTelemetry
// and slog.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Discard is a tracer provider whose spans record nothing.
type Discard struct {
	trace.TracerProvider
}

var (
	discard         = &Discard{}
	discardTracer   = &tracer{}
	discardSpan     = &span{}
	discardSpanInfo = trace.SpanContext{}
)

func NewDiscard() *Discard {
	return discard
}

func (*Discard) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return discardTracer
}

type tracer struct {
	trace.Tracer
}

func (*tracer) Start(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, discardSpan
}

type span struct {
	trace.Span
}

func (*span) End(...trace.SpanEndOption)              {}
func (*span) AddEvent(string, ...trace.EventOption)   {}
func (*span) AddLink(trace.Link)                      {}
func (*span) IsRecording() bool                       { return false }
func (*span) RecordError(error, ...trace.EventOption) {}
func (*span) SetAttributes(...attribute.KeyValue)     {}
func (*span) SetName(string)                          {}
func (*span) SetStatus(codes.Code, string)            {}
func (*span) SpanContext() trace.SpanContext          { return discardSpanInfo }
func (*span) TracerProvider() trace.TracerProvider    { return discard }

// SpanLog is a span processor that writes every ended span to a logger at
// info level, with its duration and attributes.
type SpanLog struct {
	logger *slog.Logger
}

func NewSpanLog(logger *slog.Logger) *SpanLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpanLog{logger: logger}
}

func (*SpanLog) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (s *SpanLog) OnEnd(ended sdktrace.ReadOnlySpan) {
	args := []any{"span", ended.Name(), "duration", ended.EndTime().Sub(ended.StartTime())}
	for _, kv := range ended.Attributes() {
		args = append(args, string(kv.Key), kv.Value.Emit())
	}
	if status := ended.Status(); status.Code == codes.Error {
		args = append(args, "error", status.Description)
	}
	s.logger.Info("span", args...)
}

func (*SpanLog) Shutdown(context.Context) error   { return nil }
func (*SpanLog) ForceFlush(context.Context) error { return nil }
