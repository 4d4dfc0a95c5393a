package rescheduleloan

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
)

// CommandHandler orchestrates the Reschedule Loan workflow: Read -> Decide -> guarded Update, with retry.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	loanStore    shell.TransitionStore
	datePolicy   calendar.Policy
	storeTimeout time.Duration
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithStoreTimeout bounds every single store call.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(h *CommandHandler) {
		h.storeTimeout = timeout
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(loanStore shell.TransitionStore, datePolicy calendar.Policy, opts ...Option) CommandHandler {
	handler := CommandHandler{
		loanStore:  loanStore,
		datePolicy: datePolicy,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the Reschedule Loan workflow with retry logic.
// A loan returned concurrently is seen on the retry and rejects the command as InvalidState.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var loan core.Loan
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		loan, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), shell.DomainErrorFrom(err)
	}

	if isIdempotent {
		return shell.NewIdempotentResult(loan, retryMetrics), nil
	}

	return shell.NewSuccessResult(loan, retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Loan, bool, error) {
	today := h.datePolicy.Today()

	return shell.ExecuteTransition(ctx, h.loanStore, h.storeTimeout, command.LoanID, func(current core.Loan) core.DecisionResult {
		return Decide(current, command, today)
	})
}
