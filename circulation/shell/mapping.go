package shell

import (
	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// LoanFrom converts a storable loan read from the store into a domain loan.
func LoanFrom(storable loanstore.StorableLoan) core.Loan {
	return core.Loan{
		ID:              storable.ID,
		UserID:          storable.UserID,
		BookID:          storable.BookID,
		BorrowedOn:      storable.BorrowedOn,
		DueOn:           storable.DueOn,
		ReturnedOn:      storable.ReturnedOn,
		IntrinsicStatus: core.IntrinsicStatus(storable.IntrinsicStatus),
	}
}

// LoansFrom converts storable loans in order.
func LoansFrom(storables loanstore.StorableLoans) []core.Loan {
	loans := make([]core.Loan, 0, len(storables))
	for _, storable := range storables {
		loans = append(loans, LoanFrom(storable))
	}

	return loans
}

// StorableLoanFrom converts a domain loan into the store DTO, validating it on the way.
func StorableLoanFrom(loan core.Loan) (loanstore.StorableLoan, error) {
	return loanstore.BuildStorableLoan(
		loan.ID,
		loan.UserID,
		loan.BookID,
		loan.BorrowedOn,
		loan.DueOn,
		loan.ReturnedOn,
		string(loan.IntrinsicStatus),
	)
}

// PatchFrom builds the guarded patch that turns before into after.
// Only the mutable fields are compared. The patch always requires the loan to still be open
// and to still be due on before.DueOn.
func PatchFrom(before, after core.Loan) loanstore.Patch {
	builder := loanstore.BuildPatch().OnlyIfOpen().OnlyIfDueOn(before.DueOn)

	if !after.DueOn.Equal(before.DueOn) {
		builder = builder.SetDueOn(after.DueOn)
	}

	if !after.ReturnedOn.Equal(before.ReturnedOn) {
		builder = builder.SetReturnedOn(after.ReturnedOn)
	}

	if after.IntrinsicStatus != before.IntrinsicStatus {
		builder = builder.SetIntrinsicStatus(string(after.IntrinsicStatus))
	}

	return builder.Finalize()
}

// WithStatus narrows builder to loans whose effective status as of today is status.
func WithStatus(builder loanstore.FilterBuilder, status core.Status, today calendar.Date) loanstore.FilterBuilder {
	switch status {
	case core.StatusActive:
		return builder.OpenOnly().DueOnOrAfter(today)
	case core.StatusOverdue:
		return builder.OpenOnly().DueBefore(today)
	case core.StatusReturned:
		return builder.ClosedOnly()
	default:
		return builder
	}
}
