package renewloan

import (
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

// MaxExtraDays caps a single renewal at one hundred years.
const MaxExtraDays = 36500

// Decide implements the business logic of renewing a loan.
//
// Business Rules:
//
//	GIVEN: an existing loan
//	WHEN: RenewLoan command is received
//	THEN: DueOn moves forward by exactly ExtraDays days
//	ERROR: InvalidState "loan is already returned" if the loan is returned
//	ERROR: InvalidArgument "extra days must be a positive integer" if ExtraDays < 1
//	ERROR: InvalidArgument "extra days exceed the maximum renewal period" if ExtraDays > MaxExtraDays
func Decide(current core.Loan, command Command) core.DecisionResult {
	if current.IsReturned() {
		return core.ErrorDecision(core.InvalidState(core.FailureReasonLoanReturned))
	}

	if command.ExtraDays < 1 {
		return core.ErrorDecision(core.InvalidArgument(core.FailureReasonNonPositiveDays))
	}

	if command.ExtraDays > MaxExtraDays {
		return core.ErrorDecision(core.InvalidArgument(core.FailureReasonTooManyDays))
	}

	renewed := current
	renewed.DueOn = current.DueOn.AddDays(command.ExtraDays)
	if !renewed.DueOn.After(current.DueOn) {
		return core.ErrorDecision(core.InvalidArgument(core.FailureReasonTooManyDays))
	}

	return core.SuccessDecision(renewed)
}
