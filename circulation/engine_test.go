package circulation_test

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell/directory"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memoryengine"
	. "github.com/AntonStoeckl/library-loans-go/testutil/fixtures" //nolint:revive
	"github.com/AntonStoeckl/library-loans-go/testutil/spies"
)

func givenEngine(t *testing.T, store shell.LoanStore, dir *directory.MemoryDirectory, today string, opts ...circulation.Option) *circulation.Engine {
	t.Helper()

	engine, err := circulation.NewEngine(store, dir, dir, GivenPolicyAt(t, today), opts...)
	require.NoError(t, err, "error in arranging test data")

	return engine
}

func Test_Engine_GetLoan_DerivesOverdueExample(t *testing.T) {
	// arrange
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	loan := GivenActiveLoan(t, userID, bookID, "2024-01-01", "2024-01-08")
	engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-01-10")

	// act
	view, err := engine.GetLoan(context.Background(), loan.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.StatusOverdue, view.Status)
	assert.Equal(t, 9, view.ElapsedDays)
	assert.Equal(t, -2, view.RemainingDays)
	assert.Equal(t, "Ada", view.UserName)
	assert.Equal(t, "Dune", view.BookTitle)
}

func Test_Engine_StartLoan_ConflictUntilReturned(t *testing.T) {
	// arrange
	ctx := context.Background()
	bookID := GivenUniqueID(t)
	firstUser, secondUser := GivenUniqueID(t), GivenUniqueID(t)
	dir := GivenDirectory(firstUser, "Ada", bookID, "Dune").AddUser(secondUser, "Grace")
	engine := givenEngine(t, memoryengine.NewLoanStore(), dir, "2024-03-01")
	dueOn := calendar.MustParseDate("2024-03-15")

	// act
	first, firstErr := engine.StartLoan(ctx, firstUser, bookID, dueOn)
	_, secondErr := engine.StartLoan(ctx, secondUser, bookID, dueOn)
	returned, returnErr := engine.Return(ctx, first.ID)
	third, thirdErr := engine.StartLoan(ctx, secondUser, bookID, dueOn)

	// assert
	require.NoError(t, firstErr)
	assert.Equal(t, core.StatusActive, first.Status)
	assert.Equal(t, calendar.MustParseDate("2024-03-01"), first.BorrowedOn)
	assert.Equal(t, "Dune", first.BookTitle)

	assert.ErrorIs(t, secondErr, core.ErrConflict)

	require.NoError(t, returnErr)
	assert.Equal(t, core.StatusReturned, returned.Status)
	assert.Equal(t, calendar.MustParseDate("2024-03-01"), returned.ReturnedOn)

	require.NoError(t, thirdErr)
	assert.Equal(t, core.StatusActive, third.Status)
	assert.Equal(t, "Grace", third.UserName)
	assert.NotEqual(t, first.ID, third.ID)
}

func Test_Engine_StartLoan_ConcurrentCallsOnSameBook_ExactlyOneSucceeds(t *testing.T) {
	// arrange
	const callers = 16

	bookID := GivenUniqueID(t)
	dir := directory.NewMemoryDirectory().AddBook(bookID, "Dune")
	userIDs := make([]uuid.UUID, callers)
	for i := range userIDs {
		userIDs[i] = GivenUniqueID(t)
		dir.AddUser(userIDs[i], "member")
	}

	store := memoryengine.NewLoanStore()
	engine := givenEngine(t, store, dir, "2024-03-01")
	dueOn := calendar.MustParseDate("2024-03-15")

	// act
	errs := make([]error, callers)
	start := make(chan struct{})
	wg := sync.WaitGroup{}

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = engine.StartLoan(context.Background(), userIDs[i], bookID, dueOn)
		}(i)
	}

	close(start)
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, err, core.ErrConflict)
	}

	assert.Equal(t, 1, succeeded)

	summary, err := engine.Summarize(context.Background(), "book", bookID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Active)
	assert.Equal(t, 1, summary.Total)
}

func Test_Engine_StartLoan_Rejections(t *testing.T) {
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	engine := givenEngine(t, memoryengine.NewLoanStore(), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-01")

	testCases := []struct {
		description string
		userID      uuid.UUID
		bookID      uuid.UUID
		dueOn       calendar.Date
		expectedErr error
	}{
		{"unknown user", GivenUniqueID(t), bookID, calendar.MustParseDate("2024-03-10"), core.ErrNotFound},
		{"unknown book", userID, GivenUniqueID(t), calendar.MustParseDate("2024-03-10"), core.ErrNotFound},
		{"due date in the past", userID, bookID, calendar.MustParseDate("2024-02-29"), core.ErrInvalidArgument},
		{"missing due date", userID, bookID, calendar.Date{}, core.ErrInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := engine.StartLoan(context.Background(), tc.userID, tc.bookID, tc.dueOn)

			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_Engine_StartLoan_DueToday_IsAccepted(t *testing.T) {
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	engine := givenEngine(t, memoryengine.NewLoanStore(), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-01")

	view, err := engine.StartLoan(context.Background(), userID, bookID, calendar.MustParseDate("2024-03-01"))

	require.NoError(t, err)
	assert.Equal(t, core.StatusActive, view.Status)
	assert.Equal(t, 0, view.RemainingDays)
}

func Test_Engine_RenewAndReschedule_SetExactDueDates(t *testing.T) {
	// arrange
	ctx := context.Background()
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	loan := GivenActiveLoan(t, userID, bookID, "2024-03-01", "2024-03-10")
	engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05")

	// act
	renewed, renewErr := engine.Renew(ctx, loan.ID, 3)
	defaultRenewed, defaultErr := engine.RenewByDefaultPeriod(ctx, loan.ID)
	rescheduled, rescheduleErr := engine.Reschedule(ctx, loan.ID, calendar.MustParseDate("2024-03-06"))

	// assert
	require.NoError(t, renewErr)
	assert.Equal(t, calendar.MustParseDate("2024-03-13"), renewed.DueOn)

	require.NoError(t, defaultErr)
	assert.Equal(t, calendar.MustParseDate("2024-03-20"), defaultRenewed.DueOn)

	require.NoError(t, rescheduleErr)
	assert.Equal(t, calendar.MustParseDate("2024-03-06"), rescheduled.DueOn)
	assert.Equal(t, 1, rescheduled.RemainingDays)
}

func Test_Engine_Renew_OversizedPeriod_LeavesDueDateUntouched(t *testing.T) {
	// arrange
	ctx := context.Background()
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	loan := GivenActiveLoan(t, userID, bookID, "2024-01-01", "2024-01-08")
	engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-01-02")

	// act
	_, renewErr := engine.Renew(ctx, loan.ID, math.MaxInt64/2)
	current, getErr := engine.GetLoan(ctx, loan.ID)

	// assert
	assert.ErrorIs(t, renewErr, core.ErrInvalidArgument)
	require.NoError(t, getErr)
	assert.Equal(t, loan.DueOn, current.DueOn)
}

func Test_Engine_Reschedule_FarFuture_KeepsExactRemainingDays(t *testing.T) {
	// arrange
	ctx := context.Background()
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	loan := GivenActiveLoan(t, userID, bookID, "2024-01-01", "2024-01-08")
	engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-01-01")
	newDueOn := calendar.MustParseDate("2500-01-01")

	// act
	view, err := engine.Reschedule(ctx, loan.ID, newDueOn)

	// assert
	require.NoError(t, err)
	assert.Equal(t, newDueOn, calendar.MustParseDate("2024-01-01").AddDays(view.RemainingDays))
}

func Test_Engine_Summarize_NilID_IsInvalidArgument(t *testing.T) {
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	loan := GivenActiveLoan(t, userID, bookID, "2024-03-01", "2024-03-10")
	engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05")

	_, userErr := engine.Summarize(context.Background(), "user", uuid.Nil)
	_, bookErr := engine.Summarize(context.Background(), "book", uuid.Nil)

	assert.ErrorIs(t, userErr, core.ErrInvalidArgument)
	assert.ErrorIs(t, bookErr, core.ErrInvalidArgument)
}

func Test_Engine_ConcurrentRenewals_NeverLoseASuccessfulRenewal(t *testing.T) {
	// arrange
	const callers = 8

	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	loan := GivenActiveLoan(t, userID, bookID, "2024-03-01", "2024-03-10")
	engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05")

	// act
	errs := make([]error, callers)
	start := make(chan struct{})
	wg := sync.WaitGroup{}

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = engine.Renew(context.Background(), loan.ID, 1)
		}(i)
	}

	close(start)
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, err, core.ErrConflict)
	}

	current, err := engine.GetLoan(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.DueOn.AddDays(succeeded), current.DueOn)
}

func Test_Engine_TransitionsAfterReturn_AreInvalidState(t *testing.T) {
	// arrange
	ctx := context.Background()
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	loan := GivenReturnedLoan(t, userID, bookID, "2024-03-01", "2024-03-10", "2024-03-04")
	engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05")

	// act
	_, renewErr := engine.Renew(ctx, loan.ID, 7)
	_, rescheduleErr := engine.Reschedule(ctx, loan.ID, calendar.MustParseDate("2024-03-20"))
	_, setStatusErr := engine.SetStatus(ctx, loan.ID, "Active")
	again, returnErr := engine.Return(ctx, loan.ID)

	// assert
	assert.ErrorIs(t, renewErr, core.ErrInvalidState)
	assert.ErrorIs(t, rescheduleErr, core.ErrInvalidState)
	assert.ErrorIs(t, setStatusErr, core.ErrInvalidState)
	require.NoError(t, returnErr)
	assert.Equal(t, calendar.MustParseDate("2024-03-04"), again.ReturnedOn)
}

func Test_Engine_SetStatus(t *testing.T) {
	ctx := context.Background()
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)

	t.Run("overdue override reads back as active before the due date", func(t *testing.T) {
		loan := GivenActiveLoan(t, userID, bookID, "2024-03-01", "2024-03-10")
		engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05")

		view, err := engine.SetStatus(ctx, loan.ID, "Overdue")

		require.NoError(t, err)
		assert.Equal(t, core.StatusActive, view.Status)
		assert.Equal(t, core.IntrinsicActive, view.IntrinsicStatus)
	})

	t.Run("returned override closes the loan today", func(t *testing.T) {
		loan := GivenActiveLoan(t, userID, bookID, "2024-03-01", "2024-03-10")
		engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05")

		view, err := engine.SetStatus(ctx, loan.ID, "Returned")

		require.NoError(t, err)
		assert.Equal(t, core.StatusReturned, view.Status)
		assert.Equal(t, calendar.MustParseDate("2024-03-05"), view.ReturnedOn)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		loan := GivenActiveLoan(t, userID, bookID, "2024-03-01", "2024-03-10")
		engine := givenEngine(t, GivenStoreWith(t, loan), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05")

		_, err := engine.SetStatus(ctx, loan.ID, "Lost")

		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})
}

func Test_Engine_ListLoans_AndSummarize_UseDerivedStatus(t *testing.T) {
	// arrange
	ctx := context.Background()
	userID := GivenUniqueID(t)
	bookA, bookB, bookC := GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t)
	dir := GivenDirectory(userID, "Ada", bookA, "Dune").AddBook(bookB, "Emma").AddBook(bookC, "Ulysses")
	active := GivenActiveLoan(t, userID, bookA, "2024-03-01", "2024-03-20")
	overdue := GivenActiveLoan(t, userID, bookB, "2024-02-01", "2024-02-10")
	returned := GivenReturnedLoan(t, userID, bookC, "2024-01-01", "2024-01-10", "2024-01-05")
	engine := givenEngine(t, GivenStoreWith(t, active, overdue, returned), dir, "2024-03-05")

	// act
	all, allErr := engine.ListLoans(ctx, "", userID, uuid.Nil)
	overdueOnly, overdueErr := engine.ListLoans(ctx, "Overdue", uuid.Nil, uuid.Nil)
	summary, summaryErr := engine.Summarize(ctx, "user", userID)
	emptySummary, emptyErr := engine.Summarize(ctx, "book", GivenUniqueID(t))

	// assert
	require.NoError(t, allErr)
	require.Len(t, all, 3)
	assert.Equal(t, active.ID, all[0].ID)
	assert.Equal(t, overdue.ID, all[1].ID)
	assert.Equal(t, returned.ID, all[2].ID)

	require.NoError(t, overdueErr)
	require.Len(t, overdueOnly, 1)
	assert.Equal(t, overdue.ID, overdueOnly[0].ID)
	assert.Equal(t, "Emma", overdueOnly[0].BookTitle)

	require.NoError(t, summaryErr)
	assert.Equal(t, core.Summary{Active: 1, Overdue: 1, Returned: 1, Total: 3, Deletable: false}, summary)

	require.NoError(t, emptyErr)
	assert.Equal(t, core.Summary{Deletable: true}, emptySummary)
}

func Test_Engine_InvalidQueryArguments(t *testing.T) {
	engine := givenEngine(t, memoryengine.NewLoanStore(), directory.NewMemoryDirectory(), "2024-03-05")

	_, listErr := engine.ListLoans(context.Background(), "Lost", uuid.Nil, uuid.Nil)
	_, summaryErr := engine.Summarize(context.Background(), "shelf", GivenUniqueID(t))
	_, renewErr := engine.Renew(context.Background(), GivenUniqueID(t), 0)

	assert.ErrorIs(t, listErr, core.ErrInvalidArgument)
	assert.ErrorIs(t, summaryErr, core.ErrInvalidArgument)
	assert.ErrorIs(t, renewErr, core.ErrNotFound)
}

func Test_Engine_CanceledContext_SurfacesUnavailable(t *testing.T) {
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	engine := givenEngine(t, memoryengine.NewLoanStore(), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.StartLoan(ctx, userID, bookID, calendar.MustParseDate("2024-03-10"))

	assert.ErrorIs(t, err, core.ErrUnavailable)
}

func Test_Engine_RecordsHandlerMetricsAndLogs(t *testing.T) {
	// arrange
	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	metrics := spies.NewMetricsCollectorSpy()
	tracing := spies.NewTracingCollectorSpy()
	logs := spies.NewLogHandlerSpy(false)
	engine := givenEngine(t, memoryengine.NewLoanStore(), GivenDirectory(userID, "Ada", bookID, "Dune"), "2024-03-05",
		circulation.WithMetrics(metrics),
		circulation.WithTracing(tracing),
		circulation.WithContextualLogger(logs.Logger()),
	)

	// act
	_, err := engine.StartLoan(context.Background(), userID, bookID, calendar.MustParseDate("2024-03-10"))

	// assert
	require.NoError(t, err)
	assert.True(t, metrics.HasCounter(shell.CommandHandlerCallsMetric, map[string]string{
		"command_type": "StartLoan",
		"status":       shell.StatusSuccess,
	}))
	assert.True(t, tracing.HasSpan(shell.SpanNameCommandHandle, shell.StatusSuccess))
	assert.True(t, logs.HasLog(slog.LevelInfo, shell.LogMsgCommandCompleted))
}

func Test_NewEngine_Rejects(t *testing.T) {
	policy := GivenPolicyAt(t, "2024-03-05")
	dir := directory.NewMemoryDirectory()

	_, nilStoreErr := circulation.NewEngine(nil, dir, dir, policy)
	_, nilDirErr := circulation.NewEngine(memoryengine.NewLoanStore(), nil, dir, policy)
	_, timeoutErr := circulation.NewEngine(memoryengine.NewLoanStore(), dir, dir, policy, circulation.WithStoreTimeout(-time.Second))

	assert.ErrorIs(t, nilStoreErr, circulation.ErrNilLoanStore)
	assert.ErrorIs(t, nilDirErr, circulation.ErrNilDirectory)
	assert.ErrorIs(t, timeoutErr, circulation.ErrNegativeStoreTimeout)
}
