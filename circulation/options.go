package circulation

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
)

const defaultStoreTimeout = 5 * time.Second

// ErrNegativeStoreTimeout is returned when a negative store timeout is configured.
var ErrNegativeStoreTimeout = errors.New("store timeout must not be negative")

// Option defines a functional option for configuring an Engine.
type Option func(*Engine) error

// WithStoreTimeout bounds every single store and directory call. Expiry surfaces as Unavailable.
// Zero disables the bound.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(e *Engine) error {
		if timeout < 0 {
			return ErrNegativeStoreTimeout
		}

		e.storeTimeout = timeout

		return nil
	}
}

// WithRetryOptions configures the retry of lost races in command handlers.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(e *Engine) error {
		e.retryOptions = opts
		return nil
	}
}

// WithLogger sets the logger for handler start, completion and failure messages.
func WithLogger(logger shell.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger; it takes precedence over WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for handler metrics.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for handler spans.
func WithTracing(collector shell.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}
