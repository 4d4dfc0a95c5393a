package returnloan

import (
	"github.com/google/uuid"
)

const (
	commandType = "ReturnLoan"
)

// Command represents the intent to return the book of a loan.
type Command struct {
	LoanID uuid.UUID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID) Command {
	return Command{
		LoanID: loanID,
	}
}
