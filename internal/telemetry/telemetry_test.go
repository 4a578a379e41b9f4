package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recorder(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return NewWithProvider(tp), sr
}

func attrs(s sdktrace.ReadOnlySpan) map[attribute.Key]string {
	out := make(map[attribute.Key]string)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value.Emit()
	}
	return out
}

func TestNew_DisabledWithoutEndpoint(t *testing.T) {
	tr, err := New(context.Background(), Config{})
	require.NoError(t, err)
	tr.ViewSelected(context.Background(), "a", "b")
	assert.NoError(t, tr.Shutdown(context.Background()))
	assert.NotEmpty(t, tr.Session())
}

func TestShutdown_NilTracer(t *testing.T) {
	var tr *Tracer
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestViewSelected(t *testing.T) {
	tr, sr := recorder(t)
	tr.ViewSelected(context.Background(), "architecture", "dataflow")

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "view.select", spans[0].Name())
	a := attrs(spans[0])
	assert.Equal(t, "architecture", a[keyFrom])
	assert.Equal(t, "dataflow", a[keyTo])
	assert.Equal(t, tr.Session(), a[keySession])
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestSelectionRejected(t *testing.T) {
	tr, sr := recorder(t)
	tr.SelectionRejected(context.Background(), "bogus", errors.New("unknown"))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "bogus", attrs(spans[0])[keyRaw])
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestExported(t *testing.T) {
	tr, sr := recorder(t)
	tr.Exported(context.Background(), "routing", "/tmp/routing.svg", nil)
	tr.Exported(context.Background(), "routing", "", errors.New("disk full"))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "/tmp/routing.svg", attrs(spans[0])[keyPath])
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "disk full", spans[1].Status().Description)
}

func TestSessionStablePerTracer(t *testing.T) {
	tr, sr := recorder(t)
	tr.ViewSelected(context.Background(), "a", "b")
	tr.Exported(context.Background(), "b", "p", nil)
	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, attrs(spans[0])[keySession], attrs(spans[1])[keySession])

	other, _ := recorder(t)
	assert.NotEqual(t, tr.Session(), other.Session())
}
