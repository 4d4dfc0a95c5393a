package renewloan

import (
	"github.com/google/uuid"
)

const (
	commandType = "RenewLoan"

	// DefaultExtraDays is the renewal period used when the caller does not choose one.
	DefaultExtraDays = 7
)

// Command represents the intent to keep the book of a loan for ExtraDays more days.
type Command struct {
	LoanID    uuid.UUID
	ExtraDays int
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, extraDays int) Command {
	return Command{
		LoanID:    loanID,
		ExtraDays: extraDays,
	}
}

// BuildDefaultCommand creates a Command that renews by DefaultExtraDays.
func BuildDefaultCommand(loanID uuid.UUID) Command {
	return BuildCommand(loanID, DefaultExtraDays)
}
