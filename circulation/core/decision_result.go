package core

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// DecisionResult should only be constructed using IdempotentDecision, SuccessDecision or ErrorDecision.
type DecisionResult struct {
	Outcome string // "idempotent", "success", or "error"
	Loan    Loan   // the loan after the decision; the unchanged loan for idempotent decisions
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision(current Loan) DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
		Loan:    current,
	}
}

// SuccessDecision creates a DecisionResult carrying the loan to persist.
func SuccessDecision(loan Loan) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Loan:    loan,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasChange returns true if there is a loan state to persist.
func (r DecisionResult) HasChange() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true if the decision changes nothing.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
