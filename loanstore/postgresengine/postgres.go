package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine/internal/adapters"
)

const (
	defaultLoansTableName     = "loans"
	logMsgBuildQueryFailed    = "failed to build query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgBuildStorableFailed = "failed to build storable loan from database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgQueryCompleted      = "query completed"
	logMsgLoanInserted        = "loan inserted"
	logMsgLoanUpdated         = "loan updated"
	logMsgLoanDeleted         = "loan deleted"
	logMsgBookAlreadyOnLoan   = "book already on loan"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSchemaCreated       = "schema created"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "loanstore operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrLoanID             = "loan_id"
	logAttrBookID             = "book_id"
	logAttrLoanCount          = "loan_count"
	logAttrDurationMS         = "duration_ms"
	logAttrRowsAffected       = "rows_affected"
	operationQuery            = "query"
	operationGet              = "get"
	operationInsert           = "insert"
	operationUpdate           = "update"
	operationDelete           = "delete"
	operationCreateSchema     = "create_schema"
	dialectPostgres           = "postgres"
)

// LoanStore persists loans in a PostgreSQL table.
type LoanStore struct {
	db               adapters.DBAdapter
	tableName        string
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

type queryResultRow struct {
	id              string
	userID          string
	bookID          string
	borrowedOn      time.Time
	dueOn           time.Time
	returnedOn      *time.Time
	intrinsicStatus string
}

// NewLoanStoreFromPGXPool creates a new LoanStore using a pgx Pool with optional configuration.
func NewLoanStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewPGXAdapter(db), options...)
}

// NewLoanStoreFromSQLDB creates a new LoanStore using a sql.DB with optional configuration.
func NewLoanStoreFromSQLDB(db *sql.DB, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewSQLAdapter(db), options...)
}

// NewLoanStoreFromSQLX creates a new LoanStore using a sqlx.DB with optional configuration.
func NewLoanStoreFromSQLX(db *sqlx.DB, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewSQLXAdapter(db), options...)
}

func newLoanStore(db adapters.DBAdapter, options ...Option) (LoanStore, error) {
	s := LoanStore{
		db:        db,
		tableName: defaultLoansTableName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return LoanStore{}, err
		}
	}

	return s, nil
}

// TableName returns the configured loans table.
func (s LoanStore) TableName() string {
	return s.tableName
}

// GetByID returns the loan with the given id or loanstore.ErrLoanNotFound.
func (s LoanStore) GetByID(ctx context.Context, loanID uuid.UUID) (loan loanstore.StorableLoan, err error) {
	ctx, finish := s.observe(ctx, operationGet)
	defer func() { finish(err) }()

	sqlQuery, err := s.buildSelectByIDQuery(loanID)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err)
		return loanstore.StorableLoan{}, err
	}

	loans, err := s.queryLoans(ctx, sqlQuery, operationGet)
	if err != nil {
		return loanstore.StorableLoan{}, err
	}

	if len(loans) == 0 {
		return loanstore.StorableLoan{}, loanstore.ErrLoanNotFound
	}

	return loans[0], nil
}

// ListByFilter returns all loans matching filter, newest borrowed first, ties broken by id descending.
func (s LoanStore) ListByFilter(ctx context.Context, filter loanstore.Filter) (loans loanstore.StorableLoans, err error) {
	ctx, finish := s.observe(ctx, operationQuery)
	defer func() { finish(err) }()

	sqlQuery, err := s.buildSelectQuery(filter)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err)
		return nil, err
	}

	return s.queryLoans(ctx, sqlQuery, operationQuery)
}

// Insert stores loan unconditionally and returns its id.
// The open-loan index still applies: a second open loan for a book yields loanstore.ErrConcurrencyConflict.
func (s LoanStore) Insert(ctx context.Context, loan loanstore.StorableLoan) (loanID uuid.UUID, err error) {
	ctx, finish := s.observe(ctx, operationInsert)
	defer func() { finish(err) }()

	sqlQuery, err := s.buildInsertQuery(loan)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err)
		return uuid.Nil, err
	}

	if _, err = s.exec(ctx, sqlQuery, operationInsert, loanstore.ErrInsertingLoanFailed); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, errors.Join(loanstore.ErrConcurrencyConflict, err)
		}

		return uuid.Nil, err
	}

	s.logOperation(ctx, logMsgLoanInserted, logAttrLoanID, loan.ID.String(), logAttrBookID, loan.BookID.String())

	return loan.ID, nil
}

// CheckConflictAndInsert inserts loan unless its book already has an open loan.
//
// Returns loanstore.ErrBookAlreadyOnLoan if an open loan was visible to the statement,
// and loanstore.ErrConcurrencyConflict if a concurrent insert for the same book won the race.
func (s LoanStore) CheckConflictAndInsert(ctx context.Context, loan loanstore.StorableLoan) (err error) {
	ctx, finish := s.observe(ctx, operationInsert)
	defer func() { finish(err) }()

	sqlQuery, err := s.buildConditionalInsertQuery(loan)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err)
		return err
	}

	rowsAffected, err := s.exec(ctx, sqlQuery, operationInsert, loanstore.ErrInsertingLoanFailed)
	if err != nil {
		if isUniqueViolation(err) {
			s.logOperation(ctx, logMsgConcurrencyConflict, logAttrBookID, loan.BookID.String())
			return errors.Join(loanstore.ErrConcurrencyConflict, err)
		}

		return err
	}

	if rowsAffected == 0 {
		s.logOperation(ctx, logMsgBookAlreadyOnLoan, logAttrBookID, loan.BookID.String())
		return loanstore.ErrBookAlreadyOnLoan
	}

	s.logOperation(ctx, logMsgLoanInserted, logAttrLoanID, loan.ID.String(), logAttrBookID, loan.BookID.String())

	return nil
}

// Update applies patch to the loan with the given id.
//
// A guarded patch (OnlyIfOpen, OnlyIfDueOn) that affects no rows yields loanstore.ErrConcurrencyConflict,
// an unguarded one yields loanstore.ErrLoanNotFound.
func (s LoanStore) Update(ctx context.Context, loanID uuid.UUID, patch loanstore.Patch) (err error) {
	ctx, finish := s.observe(ctx, operationUpdate)
	defer func() { finish(err) }()

	if patch.IsEmpty() {
		return loanstore.ErrEmptyPatch
	}

	sqlQuery, err := s.buildUpdateQuery(loanID, patch)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err)
		return err
	}

	rowsAffected, err := s.exec(ctx, sqlQuery, operationUpdate, loanstore.ErrUpdatingLoanFailed)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Join(loanstore.ErrConcurrencyConflict, err)
		}

		return err
	}

	if rowsAffected == 0 {
		if patch.IsGuarded() {
			s.logOperation(ctx, logMsgConcurrencyConflict, logAttrLoanID, loanID.String(), logAttrRowsAffected, rowsAffected)
			return loanstore.ErrConcurrencyConflict
		}

		return loanstore.ErrLoanNotFound
	}

	s.logOperation(ctx, logMsgLoanUpdated, logAttrLoanID, loanID.String())

	return nil
}

// Delete removes the loan with the given id, or returns loanstore.ErrLoanNotFound.
func (s LoanStore) Delete(ctx context.Context, loanID uuid.UUID) (err error) {
	ctx, finish := s.observe(ctx, operationDelete)
	defer func() { finish(err) }()

	sqlQuery, err := s.buildDeleteQuery(loanID)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err)
		return err
	}

	rowsAffected, err := s.exec(ctx, sqlQuery, operationDelete, loanstore.ErrDeletingLoanFailed)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return loanstore.ErrLoanNotFound
	}

	s.logOperation(ctx, logMsgLoanDeleted, logAttrLoanID, loanID.String())

	return nil
}

// queryLoans executes sqlQuery and converts all rows into storable loans.
func (s LoanStore) queryLoans(ctx context.Context, sqlQuery string, operation string) (loanstore.StorableLoans, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(loanstore.ErrQueryingLoansFailed, queryErr)
	}
	defer s.closeRows(ctx, rows)

	loans := make(loanstore.StorableLoans, 0)
	row := queryResultRow{}

	for rows.Next() {
		if err := rows.Scan(&row.id, &row.userID, &row.bookID, &row.borrowedOn, &row.dueOn, &row.returnedOn, &row.intrinsicStatus); err != nil {
			s.logError(ctx, logMsgScanRowFailed, err)
			return nil, errors.Join(loanstore.ErrScanningDBRowFailed, err)
		}

		loan, err := row.toStorableLoan()
		if err != nil {
			s.logError(ctx, logMsgBuildStorableFailed, err, logAttrLoanID, row.id)
			return nil, errors.Join(loanstore.ErrScanningDBRowFailed, err)
		}

		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		return nil, errors.Join(loanstore.ErrQueryingLoansFailed, err)
	}

	s.logOperation(ctx, logMsgQueryCompleted, logAttrLoanCount, len(loans), logAttrDurationMS, toMilliseconds(duration))

	return loans, nil
}

// exec executes a statement and returns the affected rows; failures are joined with failureErr.
func (s LoanStore) exec(ctx context.Context, sqlQuery string, operation string, failureErr error) (int64, error) {
	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, operation, time.Since(start))

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, errors.Join(failureErr, execErr)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, err)
		return 0, errors.Join(loanstore.ErrGettingRowsAffectedFailed, err)
	}

	return rowsAffected, nil
}

// closeRows closes database rows and logs any errors.
func (s LoanStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, err)
	}
}

func (r queryResultRow) toStorableLoan() (loanstore.StorableLoan, error) {
	id, err := uuid.Parse(r.id)
	if err != nil {
		return loanstore.StorableLoan{}, err
	}

	userID, err := uuid.Parse(r.userID)
	if err != nil {
		return loanstore.StorableLoan{}, err
	}

	bookID, err := uuid.Parse(r.bookID)
	if err != nil {
		return loanstore.StorableLoan{}, err
	}

	var returnedOn calendar.Date
	if r.returnedOn != nil {
		returnedOn = calendar.DateOf(*r.returnedOn)
	}

	return loanstore.BuildStorableLoan(
		id,
		userID,
		bookID,
		calendar.DateOf(r.borrowedOn),
		calendar.DateOf(r.dueOn),
		returnedOn,
		r.intrinsicStatus,
	)
}
