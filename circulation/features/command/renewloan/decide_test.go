package renewloan_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/renewloan"
	. "github.com/AntonStoeckl/library-loans-go/testutil/fixtures" //nolint:revive
)

func Test_Decide_MovesDueDateByExactlyExtraDays(t *testing.T) {
	testCases := []struct {
		command   func(loan core.Loan) renewloan.Command
		wantDueOn string
	}{
		{func(loan core.Loan) renewloan.Command { return renewloan.BuildDefaultCommand(loan.ID) }, "2024-01-15"},
		{func(loan core.Loan) renewloan.Command { return renewloan.BuildCommand(loan.ID, 1) }, "2024-01-09"},
		{func(loan core.Loan) renewloan.Command { return renewloan.BuildCommand(loan.ID, 30) }, "2024-02-07"},
	}

	for _, tc := range testCases {
		t.Run(tc.wantDueOn, func(t *testing.T) {
			// arrange
			loan := GivenActiveLoan(t, GivenUniqueID(t), GivenUniqueID(t), "2024-01-01", "2024-01-08")

			// act
			result := renewloan.Decide(loan, tc.command(loan))

			// assert
			assert.True(t, result.HasChange())
			assert.Equal(t, calendar.MustParseDate(tc.wantDueOn), result.Loan.DueOn)
			assert.Equal(t, loan.BorrowedOn, result.Loan.BorrowedOn)
		})
	}
}

func Test_Decide_AcceptsTheMaximumRenewal(t *testing.T) {
	loan := GivenActiveLoan(t, GivenUniqueID(t), GivenUniqueID(t), "2024-01-01", "2024-01-08")

	result := renewloan.Decide(loan, renewloan.BuildCommand(loan.ID, renewloan.MaxExtraDays))

	assert.NoError(t, result.HasError())
	assert.Equal(t, renewloan.MaxExtraDays, calendar.DaysBetween(loan.DueOn, result.Loan.DueOn))
}

func Test_Decide_OverdueLoanCanBeRenewed(t *testing.T) {
	loan := GivenActiveLoan(t, GivenUniqueID(t), GivenUniqueID(t), "2024-01-01", "2024-01-02")

	result := renewloan.Decide(loan, renewloan.BuildCommand(loan.ID, 3))

	assert.Equal(t, calendar.MustParseDate("2024-01-05"), result.Loan.DueOn)
}

func Test_Decide_Errors(t *testing.T) {
	open := GivenActiveLoan(t, GivenUniqueID(t), GivenUniqueID(t), "2024-01-01", "2024-01-08")
	returned := GivenReturnedLoan(t, GivenUniqueID(t), GivenUniqueID(t), "2024-01-01", "2024-01-08", "2024-01-02")

	testCases := []struct {
		description string
		loan        core.Loan
		extraDays   int
		wantKind    error
	}{
		{"zero days", open, 0, core.ErrInvalidArgument},
		{"negative days", open, -3, core.ErrInvalidArgument},
		{"more than the maximum", open, renewloan.MaxExtraDays + 1, core.ErrInvalidArgument},
		{"overflowing days", open, math.MaxInt64 / 2, core.ErrInvalidArgument},
		{"returned loan", returned, 7, core.ErrInvalidState},
		{"returned loan with invalid days", returned, 0, core.ErrInvalidState},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			result := renewloan.Decide(tc.loan, renewloan.BuildCommand(tc.loan.ID, tc.extraDays))

			assert.ErrorIs(t, result.HasError(), tc.wantKind)
		})
	}
}
