package startloan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// LoanStore defines the interface needed by the CommandHandler for loan store operations.
type LoanStore interface {
	ListByFilter(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error)
	CheckConflictAndInsert(ctx context.Context, loan loanstore.StorableLoan) error
}

// CommandHandler orchestrates the Start Loan workflow with pure business logic and retry.
// It handles the workflow: Resolve -> Read -> Decide -> CheckConflictAndInsert.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	loanStore    LoanStore
	users        shell.UserDirectory
	books        shell.BookDirectory
	datePolicy   calendar.Policy
	storeTimeout time.Duration
	newLoanID    func() (uuid.UUID, error)
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

// WithStoreTimeout bounds every single store and directory call.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(h *CommandHandler) {
		h.storeTimeout = timeout
	}
}

// WithLoanIDGenerator replaces the default UUIDv7 loan id generator.
func WithLoanIDGenerator(generate func() (uuid.UUID, error)) Option {
	return func(h *CommandHandler) {
		h.newLoanID = generate
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(
	loanStore LoanStore,
	users shell.UserDirectory,
	books shell.BookDirectory,
	datePolicy calendar.Policy,
	opts ...Option,
) CommandHandler {
	handler := CommandHandler{
		loanStore:  loanStore,
		users:      users,
		books:      books,
		datePolicy: datePolicy,
		newLoanID:  uuid.NewV7,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the Start Loan workflow with retry logic.
// Returns HandlerResult carrying the new loan and execution metadata for observability.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var loan core.Loan

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		loan, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		if errors.Is(err, loanstore.ErrConcurrencyConflict) {
			// the race was lost on every attempt: someone else holds the book
			err = core.Conflict(core.FailureReasonBookAlreadyOnLoan)
		}

		return shell.NewErrorResult(retryMetrics), shell.DomainErrorFrom(err)
	}

	return shell.NewSuccessResult(loan, retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Loan, error) {
	today := h.datePolicy.Today()

	// Resolve phase
	facts, err := h.gatherFacts(ctx, command)
	if err != nil {
		return core.Loan{}, err
	}

	loanID, err := h.newLoanID()
	if err != nil {
		return core.Loan{}, core.Unavailable(err)
	}

	// Business logic phase - delegate to pure core function
	result := Decide(facts, command, loanID, today)
	if err = result.HasError(); err != nil {
		return core.Loan{}, err
	}

	storable, err := shell.StorableLoanFrom(result.Loan)
	if err != nil {
		return core.Loan{}, core.Unavailable(err)
	}

	// Insert phase - the store re-checks the open loan atomically
	insertCtx, cancel := shell.StoreContext(ctx, h.storeTimeout)
	defer cancel()

	if err = h.loanStore.CheckConflictAndInsert(insertCtx, storable); err != nil {
		return core.Loan{}, err
	}

	return result.Loan, nil
}

func (h CommandHandler) gatherFacts(ctx context.Context, command Command) (Facts, error) {
	facts := Facts{}

	userCtx, cancelUser := shell.StoreContext(ctx, h.storeTimeout)
	_, userFound, err := h.users.LookupUser(userCtx, command.UserID)
	cancelUser()

	if err != nil {
		return Facts{}, core.Unavailable(err)
	}

	facts.UserExists = userFound

	bookCtx, cancelBook := shell.StoreContext(ctx, h.storeTimeout)
	_, bookFound, err := h.books.LookupBook(bookCtx, command.BookID)
	cancelBook()

	if err != nil {
		return Facts{}, core.Unavailable(err)
	}

	facts.BookExists = bookFound

	if !userFound || !bookFound {
		return facts, nil
	}

	listCtx, cancelList := shell.StoreContext(ctx, h.storeTimeout)
	defer cancelList()

	openLoans, err := h.loanStore.ListByFilter(listCtx, loanstore.BuildLoanFilter().ForBook(command.BookID).OpenOnly().Finalize())
	if err != nil {
		return Facts{}, err
	}

	facts.OpenLoansOfBook = shell.LoansFrom(openLoans)

	return facts, nil
}
