package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "hubsync"

// SpanContext pairs a span with the context it lives in.
type SpanContext struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan starts a child span tagged with the owner, tenant and entity
// fields already on ctx, so traces can be searched the way logs are.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *SpanContext {
	opts = append(opts, trace.WithAttributes(spanAttributes(GetLogFields(ctx))...))
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	return &SpanContext{ctx: ctx, span: span}
}

// StartSpanFromTraceID continues a trace carried on a queue message. An
// empty or malformed trace id starts a fresh trace.
func StartSpanFromTraceID(ctx context.Context, traceIDStr string, name string, opts ...trace.SpanStartOption) *SpanContext {
	traceID, err := trace.TraceIDFromHex(traceIDStr)
	if traceIDStr == "" || err != nil {
		return StartSpan(ctx, name, opts...)
	}

	remote := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	opts = append(opts, trace.WithLinks(trace.Link{SpanContext: remote}))
	return StartSpan(trace.ContextWithRemoteSpanContext(ctx, remote), name, opts...)
}

func (sc *SpanContext) Context() context.Context {
	return sc.ctx
}

// End may be called more than once.
func (sc *SpanContext) End() {
	if sc.span != nil {
		sc.span.End()
	}
}

// RecordError records err and marks the span failed.
func (sc *SpanContext) RecordError(err error) {
	if sc.span == nil || err == nil {
		return
	}
	sc.span.RecordError(err)
	sc.span.SetStatus(codes.Error, err.Error())
}

func spanAttributes(fields LogFields) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	add := func(key string, v *string) {
		if v != nil && *v != "" {
			attrs = append(attrs, attribute.String(key, *v))
		}
	}
	add("hubsync.owner_id", fields.OwnerID)
	add("hubsync.tenant_id", fields.TenantID)
	add("hubsync.entity_type", fields.EntityType)
	add("hubsync.natural_key", fields.NaturalKey)
	add("hubsync.delivery_id", fields.DeliveryID)
	return attrs
}
