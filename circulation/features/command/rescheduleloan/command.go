package rescheduleloan

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
)

const (
	commandType = "RescheduleLoan"
)

// Command represents the intent to replace the due date of a loan.
// A zero NewDueOn means the caller did not supply one.
type Command struct {
	LoanID   uuid.UUID
	NewDueOn calendar.Date
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, newDueOn calendar.Date) Command {
	return Command{
		LoanID:   loanID,
		NewDueOn: newDueOn,
	}
}
