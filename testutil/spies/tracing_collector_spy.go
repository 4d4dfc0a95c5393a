package spies

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// SpyFinishedSpan represents a span that was started and finished.
type SpyFinishedSpan struct {
	Name       string
	Status     string
	Attributes map[string]string
}

// SpySpanContext is the SpanContext handed out by TracingCollectorSpy.
type SpySpanContext struct {
	name       string
	status     string
	attributes map[string]string
}

func (s *SpySpanContext) SetStatus(status string) {
	s.status = status
}

func (s *SpySpanContext) AddAttribute(key, value string) {
	s.attributes[key] = value
}

// TracingCollectorSpy captures spans for testing.
type TracingCollectorSpy struct {
	finished []SpyFinishedSpan
	mu       sync.Mutex
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan returns ctx unchanged and a new span.
func (t *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, loanstore.SpanContext) {
	return ctx, &SpySpanContext{name: name, attributes: copyLabels(attrs)}
}

// FinishSpan records span with its final status.
func (t *TracingCollectorSpy) FinishSpan(spanCtx loanstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for k, v := range attrs {
		span.attributes[k] = v
	}

	t.finished = append(t.finished, SpyFinishedSpan{Name: span.name, Status: status, Attributes: span.attributes})
}

// FinishedSpans returns a copy of all finished spans.
func (t *TracingCollectorSpy) FinishedSpans() []SpyFinishedSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	spans := make([]SpyFinishedSpan, len(t.finished))
	copy(spans, t.finished)

	return spans
}

// HasSpan reports whether a span with name finished with status.
func (t *TracingCollectorSpy) HasSpan(name, status string) bool {
	for _, span := range t.FinishedSpans() {
		if span.Name == name && span.Status == status {
			return true
		}
	}

	return false
}

var _ loanstore.TracingCollector = (*TracingCollectorSpy)(nil)
