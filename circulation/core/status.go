package core

// Status is the effective status a caller sees. It is derived on every read and never stored.
type Status string

const (
	StatusActive   Status = "Active"
	StatusOverdue  Status = "Overdue"
	StatusReturned Status = "Returned"
)

const failureReasonUnknownStatus = "status must be one of Active, Overdue, Returned"

// ParseStatus accepts exactly "Active", "Overdue" or "Returned".
func ParseStatus(s string) (Status, error) {
	switch status := Status(s); status {
	case StatusActive, StatusOverdue, StatusReturned:
		return status, nil
	default:
		return "", InvalidArgument(failureReasonUnknownStatus)
	}
}

// IsOpen reports whether the status still holds the book.
func (s Status) IsOpen() bool {
	return s == StatusActive || s == StatusOverdue
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
