package postgresengine

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// Logger interface aliases for convenience.
type (
	Logger           = loanstore.Logger
	ContextualLogger = loanstore.ContextualLogger
	MetricsCollector = loanstore.MetricsCollector
	TracingCollector = loanstore.TracingCollector
	SpanContext      = loanstore.SpanContext
)

// Option defines a functional option for configuring LoanStore.
type Option func(*LoanStore) error

// WithTableName sets the table name for the LoanStore, optionally qualified as schema.table.
func WithTableName(tableName string) Option {
	return func(s *LoanStore) error {
		if tableName == "" {
			return loanstore.ErrEmptyLoansTableName
		}

		parts := strings.Split(tableName, ".")
		if len(parts) > 2 || slices.Contains(parts, "") {
			return loanstore.ErrInvalidLoansTableName
		}

		s.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the LoanStore.
//
// Debug level: SQL statements with execution timing
// Info level: loan counts, durations, conflicts
// Warn level: non-critical issues like cleanup failures
// Error level: failures that make an operation fail.
func WithLogger(logger Logger) Option {
	return func(s *LoanStore) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger. It takes precedence over WithLogger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *LoanStore) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the LoanStore.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *LoanStore) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the LoanStore.
func WithTracing(collector TracingCollector) Option {
	return func(s *LoanStore) error {
		s.tracingCollector = collector
		return nil
	}
}
