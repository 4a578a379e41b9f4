// Package telemetry records view selections and exports as OpenTelemetry
// spans. Without an endpoint every call is a no-op.
package telemetry

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"dtmas/internal/view"
)

const instrumentation = "dtmas/view"

// Span attribute keys.
const (
	keySession = attribute.Key("dtmas.session.id")
	keyFrom    = attribute.Key("dtmas.view.from")
	keyTo      = attribute.Key("dtmas.view.to")
	keyRaw     = attribute.Key("dtmas.view.requested")
	keyPath    = attribute.Key("dtmas.export.path")
)

// Config selects the exporter. An empty Endpoint disables export.
type Config struct {
	Endpoint    string // host:port, or a full URL
	ServiceName string
}

// Tracer emits one span per user-visible event.
type Tracer struct {
	tracer   oteltrace.Tracer
	shutdown func(context.Context) error
	session  string
}

// New creates a tracer exporting over OTLP/HTTP when cfg.Endpoint is set.
func New(ctx context.Context, cfg Config) (*Tracer, error) {
	if cfg.Endpoint == "" {
		return &Tracer{
			tracer:   noop.NewTracerProvider().Tracer(instrumentation),
			shutdown: func(context.Context) error { return nil },
			session:  uuid.NewString(),
		}, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint), otlptracehttp.WithInsecure()}
	if strings.Contains(cfg.Endpoint, "://") {
		opts = []otlptracehttp.Option{otlptracehttp.WithEndpointURL(cfg.Endpoint)}
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	name := cfg.ServiceName
	if name == "" {
		name = "dtmas"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return NewWithProvider(provider), nil
}

// NewWithProvider wraps an SDK provider; Shutdown shuts it down.
func NewWithProvider(tp *sdktrace.TracerProvider) *Tracer {
	return &Tracer{
		tracer:   tp.Tracer(instrumentation),
		shutdown: tp.Shutdown,
		session:  uuid.NewString(),
	}
}

// Session returns the id attached to every span from this tracer.
func (t *Tracer) Session() string { return t.session }

// ViewSelected records an accepted change of the active view.
func (t *Tracer) ViewSelected(ctx context.Context, from, to view.ID) {
	_, span := t.tracer.Start(ctx, "view.select")
	span.SetAttributes(
		keySession.String(t.session),
		keyFrom.String(string(from)),
		keyTo.String(string(to)),
	)
	span.End()
}

// SelectionRejected records a select for an id the registry does not hold.
func (t *Tracer) SelectionRejected(ctx context.Context, raw string, err error) {
	_, span := t.tracer.Start(ctx, "view.select")
	span.SetAttributes(keySession.String(t.session), keyRaw.String(raw))
	span.RecordError(err)
	span.SetStatus(codes.Error, "invalid view")
	span.End()
}

// Exported records an SVG export attempt.
func (t *Tracer) Exported(ctx context.Context, id view.ID, path string, err error) {
	_, span := t.tracer.Start(ctx, "view.export")
	span.SetAttributes(
		keySession.String(t.session),
		keyTo.String(string(id)),
		keyPath.String(path),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Shutdown flushes pending spans.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.shutdown(ctx)
}
