package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stateforward/go-kenburns/kinds"
)

const instrumentation = "github.com/stateforward/go-kenburns"

// Trace is called when a step begins. The returned function is called when
// the step ends; errors and attributes passed to it are recorded.
type Trace func(ctx context.Context, step uint64, name string, attributes ...attribute.KeyValue) func(...any)

// New traces steps as OpenTelemetry spans named "<step> <name>". A nil tracer
// uses the global provider.
func New(tracer trace.Tracer) Trace {
	if tracer == nil {
		tracer = otel.Tracer(instrumentation)
	}
	return func(ctx context.Context, step uint64, name string, attributes ...attribute.KeyValue) func(...any) {
		_, span := tracer.Start(ctx, kinds.Name(step)+" "+name, trace.WithAttributes(attributes...))
		return func(results ...any) {
			defer span.End()
			for _, result := range results {
				switch result := result.(type) {
				case error:
					if result != nil {
						span.RecordError(result)
						span.SetStatus(codes.Error, result.Error())
					}
				case attribute.KeyValue:
					span.SetAttributes(result)
				}
			}
		}
	}
}

// Log traces steps as debug records.
func Log(logger *slog.Logger) Trace {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, step uint64, name string, attributes ...attribute.KeyValue) func(...any) {
		args := make([]any, 0, len(attributes)+1)
		args = append(args, "name", name)
		for _, kv := range attributes {
			args = append(args, string(kv.Key), kv.Value.Emit())
		}
		logger.DebugContext(ctx, kinds.Name(step), args...)
		return func(...any) {}
	}
}

// Filter passes through only steps of the given kinds.
func Filter(next Trace, maybeKinds ...uint64) Trace {
	if next == nil {
		return nil
	}
	return func(ctx context.Context, step uint64, name string, attributes ...attribute.KeyValue) func(...any) {
		if !kinds.IsKind(step, maybeKinds...) {
			return func(...any) {}
		}
		return next(ctx, step, name, attributes...)
	}
}

// Join fans a step out to every trace.
func Join(traces ...Trace) Trace {
	return func(ctx context.Context, step uint64, name string, attributes ...attribute.KeyValue) func(...any) {
		ends := make([]func(...any), 0, len(traces))
		for _, trace := range traces {
			if trace != nil {
				ends = append(ends, trace(ctx, step, name, attributes...))
			}
		}
		return func(results ...any) {
			for i := len(ends) - 1; i >= 0; i-- {
				ends[i](results...)
			}
		}
	}
}
