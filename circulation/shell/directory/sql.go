package directory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register the postgres dialect
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	defaultUsersTableName = "users"
	defaultBooksTableName = "books"
)

var (
	// ErrNilDatabaseConnection is returned when a SQLDirectory is built without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an empty users or books table name is configured.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrLookupFailed wraps failures while reading the directory tables.
	ErrLookupFailed = errors.New("directory lookup failed")
)

// getter is the part of *sqlx.DB a SQLDirectory uses.
type getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// SQLDirectory resolves users and books from two tables with an id and a display column:
// users(id uuid, name text) and books(id uuid, title text).
type SQLDirectory struct {
	db              getter
	usersTableName  string
	booksTableName  string
	userLookupQuery string
	bookLookupQuery string
}

// SQLOption configures a SQLDirectory.
type SQLOption func(*SQLDirectory) error

// WithUsersTable sets the users table name.
func WithUsersTable(tableName string) SQLOption {
	return func(d *SQLDirectory) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		d.usersTableName = tableName

		return nil
	}
}

// WithBooksTable sets the books table name.
func WithBooksTable(tableName string) SQLOption {
	return func(d *SQLDirectory) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		d.booksTableName = tableName

		return nil
	}
}

// NewSQLDirectory creates a SQLDirectory on top of a sqlx connection.
func NewSQLDirectory(db *sqlx.DB, options ...SQLOption) (*SQLDirectory, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newSQLDirectory(db, options...)
}

func newSQLDirectory(db getter, options ...SQLOption) (*SQLDirectory, error) {
	directory := &SQLDirectory{
		db:             db,
		usersTableName: defaultUsersTableName,
		booksTableName: defaultBooksTableName,
	}

	for _, option := range options {
		if err := option(directory); err != nil {
			return nil, err
		}
	}

	var err error

	if directory.userLookupQuery, err = buildLookupQuery(directory.usersTableName, "name"); err != nil {
		return nil, err
	}

	if directory.bookLookupQuery, err = buildLookupQuery(directory.booksTableName, "title"); err != nil {
		return nil, err
	}

	return directory, nil
}

// buildLookupQuery builds a prepared statement selecting displayColumn by id.
func buildLookupQuery(tableName, displayColumn string) (string, error) {
	query, _, err := goqu.Dialect("postgres").
		From(tableName).
		Select(goqu.C(displayColumn)).
		Where(goqu.C("id").Eq(goqu.L("$1::uuid"))).
		ToSQL()
	if err != nil {
		return "", errors.Join(ErrLookupFailed, err)
	}

	return query, nil
}

// LookupUser returns the name of the user.
func (d *SQLDirectory) LookupUser(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	return d.lookup(ctx, d.userLookupQuery, userID)
}

// LookupBook returns the title of the book.
func (d *SQLDirectory) LookupBook(ctx context.Context, bookID uuid.UUID) (string, bool, error) {
	return d.lookup(ctx, d.bookLookupQuery, bookID)
}

func (d *SQLDirectory) lookup(ctx context.Context, query string, id uuid.UUID) (string, bool, error) {
	var display string

	err := d.db.GetContext(ctx, &display, query, id.String())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, errors.Join(ErrLookupFailed, err)
	}

	return display, true, nil
}
