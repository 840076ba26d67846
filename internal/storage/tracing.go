package storage

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "artvista/storage"

type traced struct {
	next   Store
	tracer trace.Tracer
}

// WithTracing wraps next so that every operation runs inside a span of the global
// tracer provider.
func WithTracing(next Store) Store {
	return &traced{next: next, tracer: otel.Tracer(tracerName)}
}

func (t *traced) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "storage."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("storage.key", key)),
	)
}

func finish(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *traced) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := t.start(ctx, "get", key)
	value, err := t.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool("storage.hit", err == nil))
	finish(span, err)
	return value, err
}

func (t *traced) Put(ctx context.Context, key string, value []byte) error {
	ctx, span := t.start(ctx, "put", key)
	span.SetAttributes(attribute.Int("storage.bytes", len(value)))
	err := t.next.Put(ctx, key, value)
	finish(span, err)
	return err
}

func (t *traced) Delete(ctx context.Context, key string) error {
	ctx, span := t.start(ctx, "delete", key)
	err := t.next.Delete(ctx, key)
	finish(span, err)
	return err
}
