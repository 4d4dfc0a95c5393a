package startloan

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

// Facts are what the handler found out before deciding.
type Facts struct {
	UserExists      bool
	BookExists      bool
	OpenLoansOfBook []core.Loan
}

// state represents the current state projected from the facts.
type state struct {
	userIsUnknown bool
	bookIsUnknown bool
	bookIsOnLoan  bool
}

// Decide implements the business logic to determine whether a loan may start.
// This is a pure function: it takes the facts, the command, the id for the new loan and today's date
// and returns the loan to persist.
//
// Business Rules:
//
//	GIVEN: a user with UserID and a book with BookID
//	WHEN: StartLoan command is received
//	THEN: a loan borrowed today, due on DueOn, Active and not returned is created
//	ERROR: NotFound "user does not exist" if the user does not resolve
//	ERROR: NotFound "book does not exist" if the book does not resolve
//	ERROR: Conflict "book is already on loan" if the book has an Active or Overdue loan
//	ERROR: InvalidArgument "due date is required" if DueOn is not set
//	ERROR: InvalidArgument "due date must not be in the past" if DueOn is before today
func Decide(facts Facts, command Command, loanID uuid.UUID, today calendar.Date) core.DecisionResult {
	s := project(facts, today)

	if s.userIsUnknown {
		return core.ErrorDecision(core.NotFound(core.FailureReasonUserNotFound))
	}

	if s.bookIsUnknown {
		return core.ErrorDecision(core.NotFound(core.FailureReasonBookNotFound))
	}

	if s.bookIsOnLoan {
		return core.ErrorDecision(core.Conflict(core.FailureReasonBookAlreadyOnLoan))
	}

	if command.DueOn.IsZero() {
		return core.ErrorDecision(core.InvalidArgument(core.FailureReasonDueDateMissing))
	}

	if command.DueOn.Before(today) {
		return core.ErrorDecision(core.InvalidArgument(core.FailureReasonDueDateInPast))
	}

	return core.SuccessDecision(core.Loan{
		ID:              loanID,
		UserID:          command.UserID,
		BookID:          command.BookID,
		BorrowedOn:      today,
		DueOn:           command.DueOn,
		IntrinsicStatus: core.IntrinsicActive,
	})
}

func project(facts Facts, today calendar.Date) state {
	s := state{
		userIsUnknown: !facts.UserExists,
		bookIsUnknown: !facts.BookExists,
	}

	for _, loan := range facts.OpenLoansOfBook {
		if core.EffectiveStatus(loan, today).IsOpen() {
			s.bookIsOnLoan = true
			break
		}
	}

	return s
}
