package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/library-loans-go/loanstore/oteladapters"
)

func givenTracing() (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func hasAttribute(span tracetest.SpanStub, key, value string) bool {
	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) && attr.Value.AsString() == value {
			return true
		}
	}

	return false
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	collector, exporter := givenTracing()

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "loanstore.update", map[string]string{
		"operation": "update",
		"table":     "loans",
	})
	spanCtx.AddAttribute("loan_id", "42")
	collector.FinishSpan(spanCtx, "success", map[string]string{"rows": "1"})

	// assert
	assert.NotNil(t, ctx)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "loanstore.update", span.Name)
	assert.True(t, hasAttribute(span, "operation", "update"))
	assert.True(t, hasAttribute(span, "table", "loans"))
	assert.True(t, hasAttribute(span, "loan_id", "42"))
	assert.True(t, hasAttribute(span, "rows", "1"))
	assert.Equal(t, codes.Ok, span.Status.Code)
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
		statusAttr   bool
	}{
		{status: "success", expectedCode: codes.Ok},
		{status: "idempotent", expectedCode: codes.Ok},
		{status: "error", expectedCode: codes.Error},
		{status: "canceled", expectedCode: codes.Error},
		{status: "timeout", expectedCode: codes.Error},
		{status: "rejected", expectedCode: codes.Unset, statusAttr: true},
		{status: "conflict", expectedCode: codes.Unset, statusAttr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			collector, exporter := givenTracing()

			_, spanCtx := collector.StartSpan(context.Background(), "commandhandler.handle", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Equal(t, tc.statusAttr, hasAttribute(spans[0], "status", tc.status))
		})
	}
}

type foreignSpan struct{}

func (foreignSpan) SetStatus(string)            {}
func (foreignSpan) AddAttribute(string, string) {}

func Test_TracingCollector_FinishSpan_IgnoresForeignSpans(t *testing.T) {
	collector, exporter := givenTracing()

	collector.FinishSpan(foreignSpan{}, "success", nil)

	assert.Empty(t, exporter.GetSpans())
}
