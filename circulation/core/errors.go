package core

import (
	"errors"
	"fmt"
)

// The error taxonomy. Every error returned by an engine operation wraps exactly one of these.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
	ErrUnavailable     = errors.New("unavailable")
)

// Failure reasons reported together with the taxonomy sentinels.
const (
	FailureReasonUserNotFound      = "user does not exist"
	FailureReasonBookNotFound      = "book does not exist"
	FailureReasonLoanNotFound      = "loan does not exist"
	FailureReasonBookAlreadyOnLoan = "book is already on loan"
	FailureReasonDueDateMissing    = "due date is required"
	FailureReasonDueDateInPast     = "due date must not be in the past"
	FailureReasonNonPositiveDays   = "extra days must be a positive integer"
	FailureReasonTooManyDays       = "extra days exceed the maximum renewal period"
	FailureReasonMissingID         = "id must not be empty"
	FailureReasonLoanReturned      = "loan is already returned"
	FailureReasonConcurrentChange  = "loan was changed concurrently"
)

var kinds = []error{ErrNotFound, ErrInvalidArgument, ErrConflict, ErrInvalidState, ErrUnavailable}

// NotFound reports a referenced user, book or loan that does not exist.
func NotFound(reason string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, reason)
}

// InvalidArgument reports malformed or out-of-range input.
func InvalidArgument(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, reason)
}

// Conflict reports a book that already has an open loan.
func Conflict(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}

// InvalidState reports a transition attempted on a returned loan.
func InvalidState(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, reason)
}

// Unavailable wraps a storage or directory failure, keeping the cause inspectable.
func Unavailable(cause error) error {
	if errors.Is(cause, ErrUnavailable) {
		return cause
	}

	return errors.Join(ErrUnavailable, cause)
}

// KindOf returns the taxonomy sentinel wrapped by err, or nil if err is nil or unclassified.
func KindOf(err error) error {
	if err == nil {
		return nil
	}

	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

// IsClassified reports whether err carries one of the taxonomy sentinels.
func IsClassified(err error) bool {
	return KindOf(err) != nil
}
