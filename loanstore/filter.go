package loanstore

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
)

// LoanState narrows a Filter to open or closed loans.
type LoanState int

const (
	AnyState LoanState = iota
	OpenOnly
	ClosedOnly
)

// Filter selects loans. Unset criteria do not restrict the result.
//
// It should only be constructed with BuildLoanFilter.
type Filter struct {
	userID       uuid.UUID
	bookID       uuid.UUID
	state        LoanState
	dueBefore    calendar.Date
	dueOnOrAfter calendar.Date
}

// UserID returns the user restriction, uuid.Nil if none.
func (f Filter) UserID() uuid.UUID {
	return f.userID
}

// BookID returns the book restriction, uuid.Nil if none.
func (f Filter) BookID() uuid.UUID {
	return f.bookID
}

// State returns the open/closed restriction.
func (f Filter) State() LoanState {
	return f.state
}

// DueBefore returns the exclusive upper due date bound, zero if none.
func (f Filter) DueBefore() calendar.Date {
	return f.dueBefore
}

// DueOnOrAfter returns the inclusive lower due date bound, zero if none.
func (f Filter) DueOnOrAfter() calendar.Date {
	return f.dueOnOrAfter
}

// Matches reports whether loan satisfies all criteria of f.
func (f Filter) Matches(loan StorableLoan) bool {
	if f.userID != uuid.Nil && loan.UserID != f.userID {
		return false
	}

	if f.bookID != uuid.Nil && loan.BookID != f.bookID {
		return false
	}

	switch f.state {
	case OpenOnly:
		if !loan.IsOpen() {
			return false
		}
	case ClosedOnly:
		if loan.IsOpen() {
			return false
		}
	}

	if !f.dueBefore.IsZero() && !loan.DueOn.Before(f.dueBefore) {
		return false
	}

	if !f.dueOnOrAfter.IsZero() && loan.DueOn.Before(f.dueOnOrAfter) {
		return false
	}

	return true
}

// FilterBuilder accumulates Filter criteria.
type FilterBuilder struct {
	filter Filter
}

// BuildLoanFilter starts a new Filter. Finalize without criteria matches all loans.
func BuildLoanFilter() FilterBuilder {
	return FilterBuilder{}
}

// ForUser restricts to loans of userID. uuid.Nil is ignored.
func (b FilterBuilder) ForUser(userID uuid.UUID) FilterBuilder {
	b.filter.userID = userID
	return b
}

// ForBook restricts to loans of bookID. uuid.Nil is ignored.
func (b FilterBuilder) ForBook(bookID uuid.UUID) FilterBuilder {
	b.filter.bookID = bookID
	return b
}

// OpenOnly restricts to loans that are not returned.
func (b FilterBuilder) OpenOnly() FilterBuilder {
	b.filter.state = OpenOnly
	return b
}

// ClosedOnly restricts to returned loans.
func (b FilterBuilder) ClosedOnly() FilterBuilder {
	b.filter.state = ClosedOnly
	return b
}

// DueBefore restricts to loans due strictly before d.
func (b FilterBuilder) DueBefore(d calendar.Date) FilterBuilder {
	b.filter.dueBefore = d
	return b
}

// DueOnOrAfter restricts to loans due on or after d.
func (b FilterBuilder) DueOnOrAfter(d calendar.Date) FilterBuilder {
	b.filter.dueOnOrAfter = d
	return b
}

// Finalize returns the built Filter.
func (b FilterBuilder) Finalize() Filter {
	return b.filter
}
