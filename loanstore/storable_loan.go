package loanstore

import (
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
)

// Intrinsic statuses as persisted. "Overdue" is never stored, it is derived at read time.
const (
	IntrinsicStatusActive   = "Active"
	IntrinsicStatusReturned = "Returned"
)

var (
	ErrMissingLoanID          = errors.New("loan id must not be nil")
	ErrMissingUserID          = errors.New("user id must not be nil")
	ErrMissingBookID          = errors.New("book id must not be nil")
	ErrMissingBorrowedOn      = errors.New("borrowed date must be set")
	ErrMissingDueOn           = errors.New("due date must be set")
	ErrInvalidIntrinsicStatus = errors.New("intrinsic status must be Active or Returned")
	ErrReturnedBeforeBorrowed = errors.New("returned date must not precede borrowed date")
)

// StorableLoans is an alias type for a slice of StorableLoan.
type StorableLoans = []StorableLoan

// StorableLoan is a DTO used by the loan store engines to persist loans and read them back.
//
// While its properties are exported, it should only be constructed with BuildStorableLoan.
// A zero ReturnedOn means the loan has not been returned.
type StorableLoan struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BookID          uuid.UUID
	BorrowedOn      calendar.Date
	DueOn           calendar.Date
	ReturnedOn      calendar.Date
	IntrinsicStatus string
}

// BuildStorableLoan is a factory method for StorableLoan.
func BuildStorableLoan(
	id uuid.UUID,
	userID uuid.UUID,
	bookID uuid.UUID,
	borrowedOn calendar.Date,
	dueOn calendar.Date,
	returnedOn calendar.Date,
	intrinsicStatus string,
) (StorableLoan, error) {

	switch {
	case id == uuid.Nil:
		return StorableLoan{}, ErrMissingLoanID
	case userID == uuid.Nil:
		return StorableLoan{}, ErrMissingUserID
	case bookID == uuid.Nil:
		return StorableLoan{}, ErrMissingBookID
	case borrowedOn.IsZero():
		return StorableLoan{}, ErrMissingBorrowedOn
	case dueOn.IsZero():
		return StorableLoan{}, ErrMissingDueOn
	case intrinsicStatus != IntrinsicStatusActive && intrinsicStatus != IntrinsicStatusReturned:
		return StorableLoan{}, ErrInvalidIntrinsicStatus
	case !returnedOn.IsZero() && returnedOn.Before(borrowedOn):
		return StorableLoan{}, ErrReturnedBeforeBorrowed
	}

	return StorableLoan{
		ID:              id,
		UserID:          userID,
		BookID:          bookID,
		BorrowedOn:      borrowedOn,
		DueOn:           dueOn,
		ReturnedOn:      returnedOn,
		IntrinsicStatus: intrinsicStatus,
	}, nil
}

// IsOpen reports whether the loan still holds its book: not returned and intrinsically Active.
func (l StorableLoan) IsOpen() bool {
	return l.ReturnedOn.IsZero() && l.IntrinsicStatus == IntrinsicStatusActive
}
