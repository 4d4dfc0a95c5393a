package directory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-loans-go/circulation/shell/directory"
)

func Test_MemoryDirectory_Lookups(t *testing.T) {
	// arrange
	ctx := context.Background()
	userID, bookID := uuid.New(), uuid.New()
	dir := directory.NewMemoryDirectory().AddUser(userID, "Ada").AddBook(bookID, "Dune")

	// act
	name, userFound, userErr := dir.LookupUser(ctx, userID)
	title, bookFound, bookErr := dir.LookupBook(ctx, bookID)
	_, unknownFound, unknownErr := dir.LookupBook(ctx, uuid.New())

	// assert
	assert.NoError(t, userErr)
	assert.True(t, userFound)
	assert.Equal(t, "Ada", name)
	assert.NoError(t, bookErr)
	assert.True(t, bookFound)
	assert.Equal(t, "Dune", title)
	assert.NoError(t, unknownErr)
	assert.False(t, unknownFound)
}

func Test_MemoryDirectory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := directory.NewMemoryDirectory().LookupUser(ctx, uuid.New())

	assert.ErrorIs(t, err, context.Canceled)
}
