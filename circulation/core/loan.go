package core

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
)

// IntrinsicStatus is the status as persisted. Overdue is never intrinsic.
type IntrinsicStatus string

const (
	IntrinsicActive   IntrinsicStatus = "Active"
	IntrinsicReturned IntrinsicStatus = "Returned"
)

// Loan is one borrowing of one book by one user.
// A zero ReturnedOn means the book has not come back yet.
type Loan struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BookID          uuid.UUID
	BorrowedOn      calendar.Date
	DueOn           calendar.Date
	ReturnedOn      calendar.Date
	IntrinsicStatus IntrinsicStatus
}

// IsReturned reports whether the loan reached its terminal state.
func (l Loan) IsReturned() bool {
	return !l.ReturnedOn.IsZero() || l.IntrinsicStatus == IntrinsicReturned
}
