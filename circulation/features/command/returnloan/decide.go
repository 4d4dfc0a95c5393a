package returnloan

import (
	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

// Decide implements the business logic of returning a loan.
//
// Business Rules:
//
//	GIVEN: an existing loan
//	WHEN: ReturnLoan command is received
//	THEN: the loan is Returned with ReturnedOn = today
//	IDEMPOTENCY: if the loan is already returned, nothing changes (no-op)
func Decide(current core.Loan, _ Command, today calendar.Date) core.DecisionResult {
	if current.IsReturned() {
		return core.IdempotentDecision(current)
	}

	returned := current
	returned.ReturnedOn = today
	returned.IntrinsicStatus = core.IntrinsicReturned

	return core.SuccessDecision(returned)
}
