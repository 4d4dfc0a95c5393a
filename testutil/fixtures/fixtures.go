package fixtures

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell/directory"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memoryengine"
)

// GivenUniqueID returns a fresh UUIDv7.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenPolicyAt returns a UTC date policy whose today is the given YYYY-MM-DD date.
func GivenPolicyAt(t testing.TB, today string) calendar.Policy {
	policy, err := calendar.NewPolicy(calendar.FixedClockAt(calendar.MustParseDate(today)))
	require.NoError(t, err, "error in arranging test data")

	return policy
}

// GivenDirectory returns a memory directory knowing one user and one book.
func GivenDirectory(userID uuid.UUID, userName string, bookID uuid.UUID, bookTitle string) *directory.MemoryDirectory {
	return directory.NewMemoryDirectory().AddUser(userID, userName).AddBook(bookID, bookTitle)
}

// GivenActiveLoan builds an open loan borrowed and due on the given dates.
func GivenActiveLoan(t testing.TB, userID, bookID uuid.UUID, borrowedOn, dueOn string) core.Loan {
	return core.Loan{
		ID:              GivenUniqueID(t),
		UserID:          userID,
		BookID:          bookID,
		BorrowedOn:      calendar.MustParseDate(borrowedOn),
		DueOn:           calendar.MustParseDate(dueOn),
		IntrinsicStatus: core.IntrinsicActive,
	}
}

// GivenReturnedLoan builds a loan that came back on returnedOn.
func GivenReturnedLoan(t testing.TB, userID, bookID uuid.UUID, borrowedOn, dueOn, returnedOn string) core.Loan {
	loan := GivenActiveLoan(t, userID, bookID, borrowedOn, dueOn)
	loan.ReturnedOn = calendar.MustParseDate(returnedOn)
	loan.IntrinsicStatus = core.IntrinsicReturned

	return loan
}

// GivenStoreWith returns a memory loan store seeded with loans.
func GivenStoreWith(t testing.TB, loans ...core.Loan) *memoryengine.LoanStore {
	storables := make(loanstore.StorableLoans, 0, len(loans))

	for _, loan := range loans {
		storable, err := shell.StorableLoanFrom(loan)
		require.NoError(t, err, "error in arranging test data")

		storables = append(storables, storable)
	}

	return memoryengine.NewLoanStore(memoryengine.WithLoans(storables...))
}

// LoanFromStore reads a loan back for assertions.
func LoanFromStore(t testing.TB, store *memoryengine.LoanStore, loanID uuid.UUID) core.Loan {
	storable, err := store.GetByID(context.Background(), loanID)
	require.NoError(t, err, "error in reading test data")

	return shell.LoanFrom(storable)
}
