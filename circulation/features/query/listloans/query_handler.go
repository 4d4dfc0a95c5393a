package listloans

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// LoanStore defines the interface needed by the QueryHandler.
type LoanStore interface {
	ListByFilter(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error)
}

// QueryHandler orchestrates the workflow: List -> Project -> Derive -> resolve display names.
type QueryHandler struct {
	loanStore    LoanStore
	viewer       shell.LoanViewer
	datePolicy   calendar.Policy
	storeTimeout time.Duration
}

// NewQueryHandler creates a new QueryHandler. Each store call runs under storeTimeout.
func NewQueryHandler(
	loanStore LoanStore,
	viewer shell.LoanViewer,
	datePolicy calendar.Policy,
	storeTimeout time.Duration,
) QueryHandler {
	return QueryHandler{
		loanStore:    loanStore,
		viewer:       viewer,
		datePolicy:   datePolicy,
		storeTimeout: storeTimeout,
	}
}

// Handle lists the loans matching the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoanList, error) {
	today := h.datePolicy.Today()

	listCtx, cancel := shell.StoreContext(ctx, h.storeTimeout)
	defer cancel()

	storables, err := h.loanStore.ListByFilter(listCtx, BuildLoanFilter(query, today))
	if err != nil {
		return LoanList{}, shell.DomainErrorFrom(err)
	}

	loans := Project(shell.LoansFrom(storables), query, today)

	views, err := h.viewer.ViewAll(ctx, loans, today)
	if err != nil {
		return LoanList{}, err
	}

	return LoanList{Loans: views, Count: len(views)}, nil
}
