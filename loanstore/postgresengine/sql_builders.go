package postgresengine

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

const (
	colID              = "id"
	colUserID          = "user_id"
	colBookID          = "book_id"
	colBorrowedOn      = "borrowed_on"
	colDueOn           = "due_on"
	colReturnedOn      = "returned_on"
	colIntrinsicStatus = "intrinsic_status"
	castUUID           = "?::uuid"
	castDate           = "?::date"
	castText           = "?::text"
	nullDate           = "NULL::date"
)

// selectColumns lists the loan columns in scan order. UUIDs are read as text, which every driver scans into a string.
func selectColumns() []any {
	return []any{
		goqu.L(castText, goqu.I(colID)),
		goqu.L(castText, goqu.I(colUserID)),
		goqu.L(castText, goqu.I(colBookID)),
		goqu.I(colBorrowedOn),
		goqu.I(colDueOn),
		goqu.I(colReturnedOn),
		goqu.I(colIntrinsicStatus),
	}
}

func insertColumns() []any {
	return []any{colID, colUserID, colBookID, colBorrowedOn, colDueOn, colReturnedOn, colIntrinsicStatus}
}

// openLoanConditions selects loans that still hold their book.
func openLoanConditions() []exp.Expression {
	return []exp.Expression{
		goqu.C(colIntrinsicStatus).Eq(loanstore.IntrinsicStatusActive),
		goqu.C(colReturnedOn).IsNull(),
	}
}

func closedLoanCondition() exp.Expression {
	return goqu.Or(
		goqu.C(colIntrinsicStatus).Eq(loanstore.IntrinsicStatusReturned),
		goqu.C(colReturnedOn).IsNotNull(),
	)
}

func dateLiteral(d calendar.Date) exp.LiteralExpression {
	if d.IsZero() {
		return goqu.L(nullDate)
	}

	return goqu.L(castDate, d.String())
}

func valueLiterals(loan loanstore.StorableLoan) []any {
	return []any{
		goqu.L(castUUID, loan.ID.String()),
		goqu.L(castUUID, loan.UserID.String()),
		goqu.L(castUUID, loan.BookID.String()),
		dateLiteral(loan.BorrowedOn),
		dateLiteral(loan.DueOn),
		dateLiteral(loan.ReturnedOn),
		goqu.L(castText, loan.IntrinsicStatus),
	}
}

func whereConditions(filter loanstore.Filter) []exp.Expression {
	conditions := make([]exp.Expression, 0)

	if filter.UserID() != uuid.Nil {
		conditions = append(conditions, goqu.C(colUserID).Eq(filter.UserID().String()))
	}

	if filter.BookID() != uuid.Nil {
		conditions = append(conditions, goqu.C(colBookID).Eq(filter.BookID().String()))
	}

	switch filter.State() {
	case loanstore.OpenOnly:
		conditions = append(conditions, openLoanConditions()...)
	case loanstore.ClosedOnly:
		conditions = append(conditions, closedLoanCondition())
	}

	if !filter.DueBefore().IsZero() {
		conditions = append(conditions, goqu.C(colDueOn).Lt(dateLiteral(filter.DueBefore())))
	}

	if !filter.DueOnOrAfter().IsZero() {
		conditions = append(conditions, goqu.C(colDueOn).Gte(dateLiteral(filter.DueOnOrAfter())))
	}

	return conditions
}

func (s LoanStore) buildSelectQuery(filter loanstore.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(selectColumns()...).
		Where(whereConditions(filter)...).
		Order(goqu.I(colBorrowedOn).Desc(), goqu.I(colID).Desc())

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (s LoanStore) buildSelectByIDQuery(loanID uuid.UUID) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(selectColumns()...).
		Where(goqu.C(colID).Eq(loanID.String()))

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (s LoanStore) buildInsertQuery(loan loanstore.StorableLoan) (string, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tableName).
		Cols(insertColumns()...).
		Vals(valueLiterals(loan))

	sqlQuery, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// buildConditionalInsertQuery builds INSERT ... SELECT <values> WHERE NOT EXISTS (<open loan of the book>).
func (s LoanStore) buildConditionalInsertQuery(loan loanstore.StorableLoan) (string, error) {
	openLoanStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(goqu.L("1")).
		Where(goqu.C(colBookID).Eq(loan.BookID.String())).
		Where(openLoanConditions()...)

	openLoanSQL, _, err := openLoanStmt.ToSQL()
	if err != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
	}

	valuesStmt := goqu.Dialect(dialectPostgres).
		Select(valueLiterals(loan)...).
		Where(goqu.L("NOT EXISTS (" + openLoanSQL + ")"))

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tableName).
		Cols(insertColumns()...).
		FromQuery(valuesStmt)

	sqlQuery, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (s LoanStore) buildUpdateQuery(loanID uuid.UUID, patch loanstore.Patch) (string, error) {
	record := goqu.Record{}

	if !patch.DueOn().IsZero() {
		record[colDueOn] = dateLiteral(patch.DueOn())
	}

	if !patch.ReturnedOn().IsZero() {
		record[colReturnedOn] = dateLiteral(patch.ReturnedOn())
	}

	if patch.IntrinsicStatus() != "" {
		record[colIntrinsicStatus] = patch.IntrinsicStatus()
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.tableName).
		Set(record).
		Where(goqu.C(colID).Eq(loanID.String()))

	if patch.OnlyIfOpen() {
		updateStmt = updateStmt.Where(openLoanConditions()...)
	}

	if !patch.ExpectedDueOn().IsZero() {
		updateStmt = updateStmt.Where(goqu.C(colDueOn).Eq(dateLiteral(patch.ExpectedDueOn())))
	}

	sqlQuery, _, err := updateStmt.ToSQL()
	if err != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (s LoanStore) buildDeleteQuery(loanID uuid.UUID) (string, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.tableName).
		Where(goqu.C(colID).Eq(loanID.String()))

	sqlQuery, _, err := deleteStmt.ToSQL()
	if err != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}
