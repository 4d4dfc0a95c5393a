package loansummary

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// LoanStore defines the interface needed by the QueryHandler.
type LoanStore interface {
	ListByFilter(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error)
}

// QueryHandler orchestrates the workflow: List -> Summarize.
type QueryHandler struct {
	loanStore    LoanStore
	datePolicy   calendar.Policy
	storeTimeout time.Duration
}

// NewQueryHandler creates a new QueryHandler. Each store call runs under storeTimeout.
func NewQueryHandler(loanStore LoanStore, datePolicy calendar.Policy, storeTimeout time.Duration) QueryHandler {
	return QueryHandler{
		loanStore:    loanStore,
		datePolicy:   datePolicy,
		storeTimeout: storeTimeout,
	}
}

// Handle summarizes every loan of the user or book, returned ones included.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Summary, error) {
	listCtx, cancel := shell.StoreContext(ctx, h.storeTimeout)
	defer cancel()

	storables, err := h.loanStore.ListByFilter(listCtx, BuildLoanFilter(query))
	if err != nil {
		return core.Summary{}, shell.DomainErrorFrom(err)
	}

	return core.Summarize(shell.LoansFrom(storables), h.datePolicy.Today()), nil
}

// BuildLoanFilter creates the store filter selecting all loans in the scope of the query.
func BuildLoanFilter(query Query) loanstore.Filter {
	if query.Scope == core.ScopeBook {
		return loanstore.BuildLoanFilter().ForBook(query.ID).Finalize()
	}

	return loanstore.BuildLoanFilter().ForUser(query.ID).Finalize()
}
