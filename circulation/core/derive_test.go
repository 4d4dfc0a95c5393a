package core_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

func givenActiveLoan(borrowedOn, dueOn string) core.Loan {
	return core.Loan{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		BookID:          uuid.New(),
		BorrowedOn:      calendar.MustParseDate(borrowedOn),
		DueOn:           calendar.MustParseDate(dueOn),
		IntrinsicStatus: core.IntrinsicActive,
	}
}

func Test_Derive_OverdueExample(t *testing.T) {
	// arrange
	loan := givenActiveLoan("2024-01-01", "2024-01-08")
	today := calendar.MustParseDate("2024-01-10")

	// act
	view := core.Derive(loan, today)

	// assert
	assert.Equal(t, core.StatusOverdue, view.Status)
	assert.Equal(t, 9, view.ElapsedDays)
	assert.Equal(t, -2, view.RemainingDays)
	assert.Equal(t, loan, view.Loan)
}

func Test_EffectiveStatus_OverdueOnlyAfterTheDueDate(t *testing.T) {
	loan := givenActiveLoan("2024-01-01", "2024-01-08")

	assert.Equal(t, core.StatusActive, core.EffectiveStatus(loan, calendar.MustParseDate("2024-01-07")))
	assert.Equal(t, core.StatusActive, core.EffectiveStatus(loan, calendar.MustParseDate("2024-01-08")))
	assert.Equal(t, core.StatusOverdue, core.EffectiveStatus(loan, calendar.MustParseDate("2024-01-09")))
}

func Test_EffectiveStatus_ReturnedWinsOverDates(t *testing.T) {
	today := calendar.MustParseDate("2024-03-01")

	returnedByDate := givenActiveLoan("2024-01-01", "2024-01-08")
	returnedByDate.ReturnedOn = calendar.MustParseDate("2024-01-20")

	returnedByStatus := givenActiveLoan("2024-01-01", "2024-01-08")
	returnedByStatus.IntrinsicStatus = core.IntrinsicReturned

	assert.Equal(t, core.StatusReturned, core.EffectiveStatus(returnedByDate, today))
	assert.Equal(t, core.StatusReturned, core.EffectiveStatus(returnedByStatus, today))
}

func Test_Derive_ElapsedDaysStopAtTheReturnDate(t *testing.T) {
	loan := givenActiveLoan("2024-01-01", "2024-01-08")
	loan.ReturnedOn = calendar.MustParseDate("2024-01-05")
	loan.IntrinsicStatus = core.IntrinsicReturned

	view := core.Derive(loan, calendar.MustParseDate("2024-02-01"))

	assert.Equal(t, core.StatusReturned, view.Status)
	assert.Equal(t, 4, view.ElapsedDays)
	assert.Equal(t, -24, view.RemainingDays)
}

func Test_Derive_FarFutureDueDate(t *testing.T) {
	loan := givenActiveLoan("2024-01-01", "2500-01-01")
	today := calendar.MustParseDate("2024-01-01")

	view := core.Derive(loan, today)

	assert.Equal(t, core.StatusActive, view.Status)
	assert.Equal(t, loan.DueOn, today.AddDays(view.RemainingDays))
}

func Test_DeriveAll_KeepsOrder(t *testing.T) {
	first := givenActiveLoan("2024-01-05", "2024-01-20")
	second := givenActiveLoan("2024-01-01", "2024-01-03")

	views := core.DeriveAll([]core.Loan{first, second}, calendar.MustParseDate("2024-01-10"))

	assert.Len(t, views, 2)
	assert.Equal(t, first.ID, views[0].ID)
	assert.Equal(t, core.StatusActive, views[0].Status)
	assert.Equal(t, core.StatusOverdue, views[1].Status)
}

func Test_ParseStatus(t *testing.T) {
	for _, valid := range []string{"Active", "Overdue", "Returned"} {
		status, err := core.ParseStatus(valid)

		assert.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	for _, invalid := range []string{"", "active", "Lost", "Devolvido"} {
		_, err := core.ParseStatus(invalid)

		assert.ErrorIs(t, err, core.ErrInvalidArgument, invalid)
	}
}
