package setloanstatus

import (
	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

// Decide implements the business logic of the status override.
//
// Business Rules:
//
//	GIVEN: an existing loan
//	WHEN: SetLoanStatus command is received
//	THEN: Returned marks the loan returned today; Active and Overdue store intrinsic Active
//	ERROR: InvalidState "loan is already returned" if the loan is returned
//	IDEMPOTENCY: Active or Overdue on an open loan changes nothing, since it is already intrinsically Active
func Decide(current core.Loan, command Command, today calendar.Date) core.DecisionResult {
	if current.IsReturned() {
		return core.ErrorDecision(core.InvalidState(core.FailureReasonLoanReturned))
	}

	if command.Status != core.StatusReturned {
		return core.IdempotentDecision(current)
	}

	returned := current
	returned.ReturnedOn = today
	returned.IntrinsicStatus = core.IntrinsicReturned

	return core.SuccessDecision(returned)
}
