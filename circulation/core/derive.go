package core

import (
	"github.com/AntonStoeckl/library-loans-go/calendar"
)

// LoanView is a Loan as presented to callers: effective status, day counters
// and the display names resolved from the directories.
type LoanView struct {
	Loan
	Status        Status
	ElapsedDays   int
	RemainingDays int
	UserName      string
	BookTitle     string
}

// EffectiveStatus derives the status of loan as of today.
// Returned wins over the date comparison; otherwise the loan is Overdue iff today is after the due date.
func EffectiveStatus(loan Loan, today calendar.Date) Status {
	switch {
	case loan.IsReturned():
		return StatusReturned
	case today.After(loan.DueOn):
		return StatusOverdue
	default:
		return StatusActive
	}
}

// Derive builds the LoanView of loan as of today. Display names are left empty.
//
// ElapsedDays counts from the borrow date to the return date, or to today while the loan is open.
// RemainingDays counts from today to the due date and is negative once overdue.
func Derive(loan Loan, today calendar.Date) LoanView {
	elapsedUntil := today
	if !loan.ReturnedOn.IsZero() {
		elapsedUntil = loan.ReturnedOn
	}

	return LoanView{
		Loan:          loan,
		Status:        EffectiveStatus(loan, today),
		ElapsedDays:   calendar.DaysBetween(loan.BorrowedOn, elapsedUntil),
		RemainingDays: calendar.DaysBetween(today, loan.DueOn),
	}
}

// DeriveAll derives every loan as of today, keeping the order.
func DeriveAll(loans []Loan, today calendar.Date) []LoanView {
	views := make([]LoanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, Derive(loan, today))
	}

	return views
}
