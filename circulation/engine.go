package circulation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/renewloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/rescheduleloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/returnloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/setloanstatus"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/startloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/query/getloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/query/listloans"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/query/loansummary"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
)

var (
	// ErrNilLoanStore is returned when an Engine is built without a loan store.
	ErrNilLoanStore = errors.New("loan store must not be nil")

	// ErrNilDirectory is returned when an Engine is built without a users or books directory.
	ErrNilDirectory = errors.New("users and books directories must not be nil")
)

// Engine is the loan lifecycle engine.
type Engine struct {
	datePolicy   calendar.Policy
	viewer       shell.LoanViewer
	storeTimeout time.Duration
	retryOptions []shell.RetryOption

	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector

	startLoan      shell.CommandHandler[startloan.Command]
	returnLoan     shell.CommandHandler[returnloan.Command]
	renewLoan      shell.CommandHandler[renewloan.Command]
	rescheduleLoan shell.CommandHandler[rescheduleloan.Command]
	setLoanStatus  shell.CommandHandler[setloanstatus.Command]
	getLoan        shell.QueryHandler[getloan.Query, core.LoanView]
	listLoans      shell.QueryHandler[listloans.Query, listloans.LoanList]
	loanSummary    shell.QueryHandler[loansummary.Query, core.Summary]
}

// NewEngine wires all use case handlers on top of the given store, directories and date policy.
func NewEngine(
	loanStore shell.LoanStore,
	users shell.UserDirectory,
	books shell.BookDirectory,
	datePolicy calendar.Policy,
	options ...Option,
) (*Engine, error) {
	if loanStore == nil {
		return nil, ErrNilLoanStore
	}

	if users == nil || books == nil {
		return nil, ErrNilDirectory
	}

	engine := &Engine{
		datePolicy:   datePolicy,
		storeTimeout: defaultStoreTimeout,
	}

	for _, option := range options {
		if err := option(engine); err != nil {
			return nil, err
		}
	}

	engine.viewer = shell.NewLoanViewer(users, books, engine.storeTimeout)

	if err := engine.wireCommandHandlers(loanStore, users, books); err != nil {
		return nil, err
	}

	if err := engine.wireQueryHandlers(loanStore); err != nil {
		return nil, err
	}

	return engine, nil
}

// StartLoan lends the book to the user until dueOn and returns the new loan.
func (e *Engine) StartLoan(ctx context.Context, userID, bookID uuid.UUID, dueOn calendar.Date) (core.LoanView, error) {
	result, err := e.startLoan.Handle(ctx, startloan.BuildCommand(userID, bookID, dueOn))

	return e.viewOf(ctx, result, err)
}

// Return marks the loan returned today. Returning a returned loan changes nothing.
func (e *Engine) Return(ctx context.Context, loanID uuid.UUID) (core.LoanView, error) {
	result, err := e.returnLoan.Handle(ctx, returnloan.BuildCommand(loanID))

	return e.viewOf(ctx, result, err)
}

// Renew moves the due date forward by extraDays, which must be positive.
func (e *Engine) Renew(ctx context.Context, loanID uuid.UUID, extraDays int) (core.LoanView, error) {
	result, err := e.renewLoan.Handle(ctx, renewloan.BuildCommand(loanID, extraDays))

	return e.viewOf(ctx, result, err)
}

// RenewByDefaultPeriod moves the due date forward by seven days.
func (e *Engine) RenewByDefaultPeriod(ctx context.Context, loanID uuid.UUID) (core.LoanView, error) {
	result, err := e.renewLoan.Handle(ctx, renewloan.BuildDefaultCommand(loanID))

	return e.viewOf(ctx, result, err)
}

// Reschedule replaces the due date. A zero newDueOn counts as missing.
func (e *Engine) Reschedule(ctx context.Context, loanID uuid.UUID, newDueOn calendar.Date) (core.LoanView, error) {
	result, err := e.rescheduleLoan.Handle(ctx, rescheduleloan.BuildCommand(loanID, newDueOn))

	return e.viewOf(ctx, result, err)
}

// SetStatus overrides the status of an open loan with Active, Overdue or Returned.
func (e *Engine) SetStatus(ctx context.Context, loanID uuid.UUID, status string) (core.LoanView, error) {
	command, err := setloanstatus.BuildCommand(loanID, status)
	if err != nil {
		return core.LoanView{}, err
	}

	result, err := e.setLoanStatus.Handle(ctx, command)

	return e.viewOf(ctx, result, err)
}

// GetLoan returns one loan with its derived fields.
func (e *Engine) GetLoan(ctx context.Context, loanID uuid.UUID) (core.LoanView, error) {
	view, err := e.getLoan.Handle(ctx, getloan.BuildQuery(loanID))

	return view, classify(err)
}

// ListLoans lists loans, optionally narrowed by effective status ("" for all), user and book (uuid.Nil for all).
func (e *Engine) ListLoans(ctx context.Context, status string, userID, bookID uuid.UUID) ([]core.LoanView, error) {
	query, err := listloans.BuildQuery(status, userID, bookID)
	if err != nil {
		return nil, err
	}

	list, err := e.listLoans.Handle(ctx, query)
	if err != nil {
		return nil, classify(err)
	}

	return list.Loans, nil
}

// Summarize counts the loans of a user or a book ("user" or "book" scope) per effective status.
func (e *Engine) Summarize(ctx context.Context, scope string, id uuid.UUID) (core.Summary, error) {
	query, err := loansummary.BuildQuery(scope, id)
	if err != nil {
		return core.Summary{}, err
	}

	summary, err := e.loanSummary.Handle(ctx, query)

	return summary, classify(err)
}

// Today returns the current date of the engine's date policy.
func (e *Engine) Today() calendar.Date {
	return e.datePolicy.Today()
}

func (e *Engine) viewOf(ctx context.Context, result shell.HandlerResult, err error) (core.LoanView, error) {
	if err != nil {
		return core.LoanView{}, classify(err)
	}

	return e.viewer.View(ctx, result.Loan, e.datePolicy.Today())
}

// classify makes sure the error carries a taxonomy sentinel; context errors become Unavailable.
func classify(err error) error {
	if err == nil || core.IsClassified(err) {
		return err
	}

	return core.Unavailable(err)
}
