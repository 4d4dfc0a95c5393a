package setloanstatus

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

const (
	commandType = "SetLoanStatus"
)

// Command represents the intent to override the status of a loan.
type Command struct {
	LoanID uuid.UUID
	Status core.Status
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command, rejecting any status other than Active, Overdue or Returned
// with an InvalidArgument error.
func BuildCommand(loanID uuid.UUID, status string) (Command, error) {
	parsed, err := core.ParseStatus(status)
	if err != nil {
		return Command{}, err
	}

	return Command{
		LoanID: loanID,
		Status: parsed,
	}, nil
}
