package getloan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// LoanStore defines the interface needed by the QueryHandler.
type LoanStore interface {
	GetByID(ctx context.Context, loanID uuid.UUID) (loanstore.StorableLoan, error)
}

// QueryHandler orchestrates the workflow: Read -> Derive -> resolve display names.
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

// Handle reads the loan and derives its view as of today.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.LoanView, error) {
	readCtx, cancel := shell.StoreContext(ctx, h.storeTimeout)
	defer cancel()

	storable, err := h.loanStore.GetByID(readCtx, query.LoanID)
	if err != nil {
		return core.LoanView{}, shell.DomainErrorFrom(err)
	}

	return h.viewer.View(ctx, shell.LoanFrom(storable), h.datePolicy.Today())
}
