package shell

import (
	"time"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures the business outcome and retry metadata without coupling the handler to observability.
type HandlerResult struct {
	// Loan is the loan after the command; for idempotent outcomes it is the unchanged loan.
	Loan core.Loan

	// Idempotent indicates that no state change was needed.
	Idempotent bool

	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the final error encountered during retries.
	// Values: "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted is true when all attempts failed with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for a successful state change.
func NewSuccessResult(loan core.Loan, retryMetrics RetryMetrics) HandlerResult {
	return newResult(loan, false, retryMetrics)
}

// NewIdempotentResult creates a HandlerResult for a command that changed nothing.
func NewIdempotentResult(loan core.Loan, retryMetrics RetryMetrics) HandlerResult {
	return newResult(loan, true, retryMetrics)
}

// NewErrorResult creates a HandlerResult for a failed command, keeping the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newResult(core.Loan{}, false, retryMetrics)
}

func newResult(loan core.Loan, idempotent bool, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Loan:             loan,
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
