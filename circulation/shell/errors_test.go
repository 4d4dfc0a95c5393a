package shell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

func Test_DomainErrorFrom(t *testing.T) {
	alreadyClassified := core.InvalidState(core.FailureReasonLoanReturned)

	testCases := []struct {
		description string
		storeErr    error
		wantKind    error
	}{
		{"loan not found", loanstore.ErrLoanNotFound, core.ErrNotFound},
		{"book already on loan", loanstore.ErrBookAlreadyOnLoan, core.ErrConflict},
		{"concurrent change", loanstore.ErrConcurrencyConflict, core.ErrConflict},
		{"query failure", errors.Join(loanstore.ErrQueryingLoansFailed, errors.New("boom")), core.ErrUnavailable},
		{"timeout", context.DeadlineExceeded, core.ErrUnavailable},
		{"already classified", alreadyClassified, core.ErrInvalidState},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			err := shell.DomainErrorFrom(tc.storeErr)

			// assert
			assert.Equal(t, tc.wantKind, core.KindOf(err))
		})
	}

	assert.NoError(t, shell.DomainErrorFrom(nil))
	assert.Same(t, alreadyClassified, shell.DomainErrorFrom(alreadyClassified))
}

func Test_StatusOf(t *testing.T) {
	assert.Equal(t, shell.StatusSuccess, shell.StatusOf(nil))
	assert.Equal(t, shell.StatusRejected, shell.StatusOf(core.Conflict(core.FailureReasonBookAlreadyOnLoan)))
	assert.Equal(t, shell.StatusTimeout, shell.StatusOf(core.Unavailable(context.DeadlineExceeded)))
	assert.Equal(t, shell.StatusCanceled, shell.StatusOf(context.Canceled))
	assert.Equal(t, shell.StatusError, shell.StatusOf(core.Unavailable(errors.New("connection reset"))))
}
