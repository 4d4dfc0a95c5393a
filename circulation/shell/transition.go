package shell

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// TransitionStore is the part of the loan store needed to change an existing loan.
type TransitionStore interface {
	GetByID(ctx context.Context, loanID uuid.UUID) (loanstore.StorableLoan, error)
	Update(ctx context.Context, loanID uuid.UUID, patch loanstore.Patch) error
}

// ExecuteTransition runs one Read -> Decide -> Update cycle on an existing loan.
// It returns the loan after the decision and whether the decision was idempotent.
//
// Store errors are returned unchanged, so a lost race (loanstore.ErrConcurrencyConflict) can be retried
// by the caller; business rule violations come back classified.
func ExecuteTransition(
	ctx context.Context,
	store TransitionStore,
	storeTimeout time.Duration,
	loanID uuid.UUID,
	decide func(current core.Loan) core.DecisionResult,
) (core.Loan, bool, error) {
	// Read phase
	readCtx, cancelRead := StoreContext(ctx, storeTimeout)
	storable, err := store.GetByID(readCtx, loanID)
	cancelRead()

	if err != nil {
		return core.Loan{}, false, err
	}

	current := LoanFrom(storable)

	// Business logic phase - delegate to the pure decide function
	result := decide(current)

	if err = result.HasError(); err != nil {
		return core.Loan{}, false, err
	}

	if result.IsIdempotent() {
		return current, true, nil
	}

	// Update phase
	updateCtx, cancelUpdate := StoreContext(ctx, storeTimeout)
	defer cancelUpdate()

	if err = store.Update(updateCtx, loanID, PatchFrom(current, result.Loan)); err != nil {
		return core.Loan{}, false, err
	}

	return result.Loan, false, nil
}
