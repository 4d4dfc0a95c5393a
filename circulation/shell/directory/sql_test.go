package directory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	value    string
	err      error
	query    string
	args     []any
	getCalls int
}

func (f *fakeGetter) GetContext(_ context.Context, dest any, query string, args ...any) error {
	f.getCalls++
	f.query = query
	f.args = args

	if f.err != nil {
		return f.err
	}

	*(dest.(*string)) = f.value

	return nil
}

func Test_SQLDirectory_LookupUser_Found(t *testing.T) {
	// arrange
	db := &fakeGetter{value: "Ada"}
	dir, err := newSQLDirectory(db, WithUsersTable("members"))
	require.NoError(t, err)
	userID := uuid.New()

	// act
	name, found, lookupErr := dir.LookupUser(context.Background(), userID)

	// assert
	assert.NoError(t, lookupErr)
	assert.True(t, found)
	assert.Equal(t, "Ada", name)
	assert.Equal(t, `SELECT "name" FROM "members" WHERE ("id" = $1::uuid)`, db.query)
	assert.Equal(t, []any{userID.String()}, db.args)
}

func Test_SQLDirectory_LookupBook_NotFound(t *testing.T) {
	db := &fakeGetter{err: sql.ErrNoRows}
	dir, err := newSQLDirectory(db)
	require.NoError(t, err)

	_, found, lookupErr := dir.LookupBook(context.Background(), uuid.New())

	assert.NoError(t, lookupErr)
	assert.False(t, found)
	assert.Equal(t, `SELECT "title" FROM "books" WHERE ("id" = $1::uuid)`, db.query)
}

func Test_SQLDirectory_LookupFailure(t *testing.T) {
	db := &fakeGetter{err: errors.New("connection refused")}
	dir, err := newSQLDirectory(db)
	require.NoError(t, err)

	_, _, lookupErr := dir.LookupUser(context.Background(), uuid.New())

	assert.ErrorIs(t, lookupErr, ErrLookupFailed)
}

func Test_NewSQLDirectory_Validation(t *testing.T) {
	_, err := NewSQLDirectory(nil)
	assert.ErrorIs(t, err, ErrNilDatabaseConnection)

	_, err = newSQLDirectory(&fakeGetter{}, WithBooksTable(""))
	assert.ErrorIs(t, err, ErrEmptyTableName)
}
