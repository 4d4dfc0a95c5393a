package loansummary_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/query/loansummary"
	. "github.com/AntonStoeckl/library-loans-go/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle_SummarizesUser(t *testing.T) {
	// arrange
	userID := GivenUniqueID(t)
	store := GivenStoreWith(t,
		GivenActiveLoan(t, userID, GivenUniqueID(t), "2024-01-01", "2024-01-08"),
		GivenActiveLoan(t, userID, GivenUniqueID(t), "2024-01-05", "2024-01-15"),
		GivenReturnedLoan(t, userID, GivenUniqueID(t), "2023-12-01", "2023-12-08", "2023-12-07"),
		GivenActiveLoan(t, GivenUniqueID(t), GivenUniqueID(t), "2024-01-05", "2024-01-15"),
	)
	handler := loansummary.NewQueryHandler(store, GivenPolicyAt(t, "2024-01-10"), 0)
	query, err := loansummary.BuildQuery("user", userID)
	require.NoError(t, err)

	// act
	summary, err := handler.Handle(context.Background(), query)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.Summary{Active: 1, Overdue: 1, Returned: 1, Total: 3, Deletable: false}, summary)
}

func Test_QueryHandler_Handle_BookWithoutLoans_IsDeletable(t *testing.T) {
	handler := loansummary.NewQueryHandler(GivenStoreWith(t), GivenPolicyAt(t, "2024-01-10"), 0)
	query, err := loansummary.BuildQuery("book", GivenUniqueID(t))
	require.NoError(t, err)

	summary, err := handler.Handle(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, core.Summary{Deletable: true}, summary)
}

func Test_BuildQuery_RejectsUnknownScope(t *testing.T) {
	_, err := loansummary.BuildQuery("branch", GivenUniqueID(t))

	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func Test_BuildQuery_RejectsNilID(t *testing.T) {
	for _, scope := range []string{"user", "book"} {
		_, err := loansummary.BuildQuery(scope, uuid.Nil)

		assert.ErrorIs(t, err, core.ErrInvalidArgument, scope)
	}
}
