package postgresengine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

const (
	metricOperationDuration = "loanstore_operation_duration_seconds"
	metricOperationsTotal   = "loanstore_operations_total"
	metricConflictsTotal    = "loanstore_conflicts_total"
	spanNamePrefix          = "loanstore."
	spanAttrOperation       = "operation"
	spanAttrTable           = "table"
	labelStatus             = "status"
	statusSuccess           = "success"
	statusError             = "error"
	statusConflict          = "conflict"
	statusTimeout           = "timeout"
	statusCanceled          = "canceled"
)

// observe starts a span for operation and returns the function that finishes it
// and records duration and outcome metrics.
func (s LoanStore) observe(ctx context.Context, operation string) (context.Context, func(err error)) {
	start := time.Now()

	var span SpanContext
	if s.tracingCollector != nil {
		ctx, span = s.tracingCollector.StartSpan(
			ctx,
			spanNamePrefix+operation,
			map[string]string{spanAttrOperation: operation, spanAttrTable: s.tableName},
		)
	}

	return ctx, func(err error) {
		status := statusFor(err)
		duration := time.Since(start)

		if span != nil {
			s.tracingCollector.FinishSpan(span, status, nil)
		}

		s.recordMetrics(ctx, operation, status, duration)
	}
}

func statusFor(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, loanstore.ErrConcurrencyConflict), errors.Is(err, loanstore.ErrBookAlreadyOnLoan):
		return statusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return statusTimeout
	case errors.Is(err, context.Canceled):
		return statusCanceled
	case errors.Is(err, loanstore.ErrLoanNotFound):
		return statusSuccess
	default:
		return statusError
	}
}

func (s LoanStore) recordMetrics(ctx context.Context, operation, status string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextual, ok := s.metricsCollector.(loanstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		contextual.IncrementCounterContext(ctx, metricOperationsTotal, labels)
		if status == statusConflict {
			contextual.IncrementCounterContext(ctx, metricConflictsTotal, labels)
		}

		return
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
	s.metricsCollector.IncrementCounter(metricOperationsTotal, labels)
	if status == statusConflict {
		s.metricsCollector.IncrementCounter(metricConflictsTotal, labels)
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s LoanStore) logQueryWithDuration(ctx context.Context, sqlQuery string, operation string, duration time.Duration) {
	s.logDebug(ctx, logMsgSQLExecuted+operation, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
}

// logOperation logs operational information at info level.
func (s LoanStore) logOperation(ctx context.Context, action string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case s.logger != nil:
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s LoanStore) logDebug(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.DebugContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Debug(msg, args...)
	}
}

func (s LoanStore) logWarn(ctx context.Context, msg string, err error) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.WarnContext(ctx, msg, logAttrError, err.Error())
	case s.logger != nil:
		s.logger.Warn(msg, logAttrError, err.Error())
	}
}

// logError logs error information at the error level.
func (s LoanStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	case s.logger != nil:
		s.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
