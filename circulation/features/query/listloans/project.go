package listloans

import (
	"bytes"
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// BuildLoanFilter creates the store filter for the query as of today.
func BuildLoanFilter(query Query, today calendar.Date) loanstore.Filter {
	builder := loanstore.BuildLoanFilter()

	if query.UserID != uuid.Nil {
		builder = builder.ForUser(query.UserID)
	}

	if query.BookID != uuid.Nil {
		builder = builder.ForBook(query.BookID)
	}

	return shell.WithStatus(builder, query.Status, today).Finalize()
}

// Project selects and orders the loans of the query as of today.
// This is a pure function: the status filter is re-applied on derived statuses and the order
// is borrow date descending, then id descending.
func Project(loans []core.Loan, query Query, today calendar.Date) []core.Loan {
	selected := make([]core.Loan, 0, len(loans))

	for _, loan := range loans {
		if query.Status != "" && core.EffectiveStatus(loan, today) != query.Status {
			continue
		}

		selected = append(selected, loan)
	}

	slices.SortStableFunc(selected, func(a, b core.Loan) int {
		if byDate := b.BorrowedOn.Compare(a.BorrowedOn); byDate != 0 {
			return byDate
		}

		return bytes.Compare(b.ID[:], a.ID[:])
	})

	return selected
}
