package rescheduleloan

import (
	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

// Decide implements the business logic of rescheduling a loan.
//
// Business Rules:
//
//	GIVEN: an existing loan
//	WHEN: RescheduleLoan command is received
//	THEN: DueOn becomes NewDueOn
//	ERROR: InvalidState "loan is already returned" if the loan is returned
//	ERROR: InvalidArgument "due date is required" if NewDueOn is not set
//	ERROR: InvalidArgument "due date must not be in the past" if NewDueOn is before today
//	IDEMPOTENCY: if NewDueOn equals the current due date, nothing changes (no-op)
func Decide(current core.Loan, command Command, today calendar.Date) core.DecisionResult {
	if current.IsReturned() {
		return core.ErrorDecision(core.InvalidState(core.FailureReasonLoanReturned))
	}

	if command.NewDueOn.IsZero() {
		return core.ErrorDecision(core.InvalidArgument(core.FailureReasonDueDateMissing))
	}

	if command.NewDueOn.Before(today) {
		return core.ErrorDecision(core.InvalidArgument(core.FailureReasonDueDateInPast))
	}

	if command.NewDueOn.Equal(current.DueOn) {
		return core.IdempotentDecision(current)
	}

	rescheduled := current
	rescheduled.DueOn = command.NewDueOn

	return core.SuccessDecision(rescheduled)
}
