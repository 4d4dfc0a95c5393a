package startloan

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
)

const (
	commandType = "StartLoan"
)

// Command represents the intent of a user to borrow a book until DueOn.
type Command struct {
	UserID uuid.UUID
	BookID uuid.UUID
	DueOn  calendar.Date
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, bookID uuid.UUID, dueOn calendar.Date) Command {
	return Command{
		UserID: userID,
		BookID: bookID,
		DueOn:  dueOn,
	}
}
