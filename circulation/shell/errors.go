package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// DomainErrorFrom translates a loan store error into the domain error taxonomy.
// Errors that are already classified pass through unchanged; anything unexpected is Unavailable.
func DomainErrorFrom(err error) error {
	switch {
	case err == nil:
		return nil
	case core.IsClassified(err):
		return err
	case errors.Is(err, loanstore.ErrLoanNotFound):
		return core.NotFound(core.FailureReasonLoanNotFound)
	case errors.Is(err, loanstore.ErrBookAlreadyOnLoan):
		return core.Conflict(core.FailureReasonBookAlreadyOnLoan)
	case errors.Is(err, loanstore.ErrConcurrencyConflict):
		return core.Conflict(core.FailureReasonConcurrentChange)
	default:
		return core.Unavailable(err)
	}
}
