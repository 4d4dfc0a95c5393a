package loanstore

import (
	"errors"
)

var (
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
	ErrEmptyLoansTableName   = errors.New("empty loans table name supplied")
	ErrInvalidLoansTableName = errors.New("loans table name must be table or schema.table")

	// ErrLoanNotFound is returned when no loan with the requested id exists.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrBookAlreadyOnLoan is returned by CheckConflictAndInsert when the book has an open loan.
	ErrBookAlreadyOnLoan = errors.New("book already has an open loan")

	// ErrConcurrencyConflict is returned when a concurrent writer won a race, e.g. a guarded update
	// affected no rows or the open-loan uniqueness constraint was violated.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")

	ErrBuildingQueryFailed       = errors.New("building query failed")
	ErrQueryingLoansFailed       = errors.New("querying loans failed")
	ErrScanningDBRowFailed       = errors.New("scanning db row failed")
	ErrInsertingLoanFailed       = errors.New("inserting loan failed")
	ErrUpdatingLoanFailed        = errors.New("updating loan failed")
	ErrDeletingLoanFailed        = errors.New("deleting loan failed")
	ErrCreatingSchemaFailed      = errors.New("creating schema failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
	ErrEmptyPatch                = errors.New("patch does not change anything")
)
