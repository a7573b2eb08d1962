package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	o := &Observability{tracerProvider: tp, tracer: tp.Tracer("test")}

	_, span := o.StartSpan(context.Background(), "find-eligible-loans", 42)
	EndSpan(span, errors.New("profile not found"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "find-eligible-loans", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.NoError(t, o.Shutdown(context.Background()))
}

func TestNoop_IsSafe(t *testing.T) {
	o := Noop()
	ctx, span := o.StartSpan(context.Background(), "loans-by-type", 1)
	EndSpan(span, nil)
	o.RecordJob(ctx, "loans-by-type", "completed", time.Millisecond)
	assert.NoError(t, o.Shutdown(ctx))
}
