package core

import (
	"github.com/AntonStoeckl/library-loans-go/calendar"
)

// Scope selects whose loans a Summary covers.
type Scope string

const (
	ScopeUser Scope = "user"
	ScopeBook Scope = "book"
)

const failureReasonUnknownScope = "scope must be user or book"

// ParseScope accepts "user" or "book".
func ParseScope(s string) (Scope, error) {
	switch scope := Scope(s); scope {
	case ScopeUser, ScopeBook:
		return scope, nil
	default:
		return "", InvalidArgument(failureReasonUnknownScope)
	}
}

// Summary counts loans per effective status. Deletable is true iff there are no loans at all.
type Summary struct {
	Active    int
	Overdue   int
	Returned  int
	Total     int
	Deletable bool
}

// Summarize derives the status of every loan as of today and counts them.
func Summarize(loans []Loan, today calendar.Date) Summary {
	summary := Summary{}

	for _, loan := range loans {
		switch EffectiveStatus(loan, today) {
		case StatusActive:
			summary.Active++
		case StatusOverdue:
			summary.Overdue++
		case StatusReturned:
			summary.Returned++
		}
	}

	summary.Total = len(loans)
	summary.Deletable = summary.Total == 0

	return summary
}
