package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/circulation"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell/httpapi"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memoryengine"
	. "github.com/AntonStoeckl/library-loans-go/testutil/fixtures" //nolint:revive
)

type testServer struct {
	router *gin.Engine
	store  *memoryengine.LoanStore
	userID uuid.UUID
	bookID uuid.UUID
}

func givenServer(t *testing.T, loans ...core.Loan) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userID, bookID := GivenUniqueID(t), GivenUniqueID(t)
	for i := range loans {
		loans[i].UserID, loans[i].BookID = userID, bookID
	}

	store := GivenStoreWith(t, loans...)
	dir := GivenDirectory(userID, "Ada", bookID, "Dune")

	engine, err := circulation.NewEngine(store, dir, dir, GivenPolicyAt(t, "2024-03-05"))
	require.NoError(t, err, "error in arranging test data")

	handler, err := httpapi.NewHandler(engine, httpapi.WithLoanDeleter(store, time.Second))
	require.NoError(t, err, "error in arranging test data")

	return testServer{router: httpapi.NewRouter(handler), store: store, userID: userID, bookID: bookID}
}

func (s testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, jsoniter.Any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	return rec, jsoniter.Get(rec.Body.Bytes())
}

func Test_StartLoan_CreatesAndConflicts(t *testing.T) {
	// arrange
	server := givenServer(t)
	body := `{"user_id":"` + server.userID.String() + `","book_id":"` + server.bookID.String() + `","due_on":"2024-03-12"}`

	// act
	created, createdBody := server.do(t, http.MethodPost, "/api/loans", body)
	conflict, conflictBody := server.do(t, http.MethodPost, "/api/loans", body)

	// assert
	assert.Equal(t, http.StatusCreated, created.Code)
	assert.Equal(t, "Active", createdBody.Get("status").ToString())
	assert.Equal(t, "2024-03-05", createdBody.Get("borrowed_on").ToString())
	assert.Equal(t, "2024-03-12", createdBody.Get("due_on").ToString())
	assert.Equal(t, jsoniter.NilValue, createdBody.Get("returned_on").ValueType())
	assert.Equal(t, "Ada", createdBody.Get("user_name").ToString())
	assert.Equal(t, 7, createdBody.Get("remaining_days").ToInt())

	assert.Equal(t, http.StatusConflict, conflict.Code)
	assert.Equal(t, "conflict", conflictBody.Get("error").ToString())
}

func Test_StartLoan_Rejections(t *testing.T) {
	server := givenServer(t)
	user, book := server.userID.String(), server.bookID.String()

	testCases := []struct {
		description  string
		body         string
		expectedCode int
	}{
		{"malformed json", `{"user_id":`, http.StatusBadRequest},
		{"not an object", `[1,2]`, http.StatusBadRequest},
		{"invalid user id", `{"user_id":"42","book_id":"` + book + `","due_on":"2024-03-12"}`, http.StatusBadRequest},
		{"malformed due date", `{"user_id":"` + user + `","book_id":"` + book + `","due_on":"12/03/2024"}`, http.StatusBadRequest},
		{"due date in the past", `{"user_id":"` + user + `","book_id":"` + book + `","due_on":"2024-03-04"}`, http.StatusBadRequest},
		{"missing due date", `{"user_id":"` + user + `","book_id":"` + book + `"}`, http.StatusBadRequest},
		{"unknown book", `{"user_id":"` + user + `","book_id":"` + uuid.NewString() + `","due_on":"2024-03-12"}`, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			rec, _ := server.do(t, http.MethodPost, "/api/loans", tc.body)

			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_GetLoan_DerivesOverdue(t *testing.T) {
	// arrange
	loan := GivenActiveLoan(t, uuid.Nil, uuid.Nil, "2024-02-20", "2024-03-01")
	server := givenServer(t, loan)

	// act
	rec, body := server.do(t, http.MethodGet, "/api/loans/"+loan.ID.String(), "")

	// assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Overdue", body.Get("status").ToString())
	assert.Equal(t, 14, body.Get("elapsed_days").ToInt())
	assert.Equal(t, -4, body.Get("remaining_days").ToInt())
	assert.Equal(t, "Dune", body.Get("book_title").ToString())
}

func Test_GetLoan_NotFoundAndBadID(t *testing.T) {
	server := givenServer(t)

	missing, missingBody := server.do(t, http.MethodGet, "/api/loans/"+uuid.NewString(), "")
	bad, _ := server.do(t, http.MethodGet, "/api/loans/not-a-uuid", "")

	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "not_found", missingBody.Get("error").ToString())
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func Test_UpdateLoan_Actions(t *testing.T) {
	testCases := []struct {
		description     string
		body            string
		expectedCode    int
		expectedDueOn   string
		expectedStatus  string
		expectedErrKind string
	}{
		{description: "renew by default period", body: `{"action":"renew"}`, expectedCode: http.StatusOK, expectedDueOn: "2024-03-17", expectedStatus: "Active"},
		{description: "renew by days", body: `{"action":"renew","days":3}`, expectedCode: http.StatusOK, expectedDueOn: "2024-03-13", expectedStatus: "Active"},
		{description: "renew by fractional days", body: `{"action":"renew","days":2.5}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
		{description: "renew by days as string", body: `{"action":"renew","days":"3"}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
		{description: "renew by zero days", body: `{"action":"renew","days":0}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
		{description: "renew by too many days", body: `{"action":"renew","days":2147483647}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
		{description: "reschedule", body: `{"action":"reschedule","new_due_on":"2024-03-06"}`, expectedCode: http.StatusOK, expectedDueOn: "2024-03-06", expectedStatus: "Active"},
		{description: "reschedule into the past", body: `{"action":"reschedule","new_due_on":"2024-03-01"}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
		{description: "reschedule without date", body: `{"action":"reschedule"}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
		{description: "return", body: `{"action":"return"}`, expectedCode: http.StatusOK, expectedDueOn: "2024-03-10", expectedStatus: "Returned"},
		{description: "status override", body: `{"status":"Returned"}`, expectedCode: http.StatusOK, expectedDueOn: "2024-03-10", expectedStatus: "Returned"},
		{description: "unknown status", body: `{"status":"Lost"}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
		{description: "unknown action", body: `{"action":"extend"}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
		{description: "empty body object", body: `{}`, expectedCode: http.StatusBadRequest, expectedErrKind: "invalid_argument"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			loan := GivenActiveLoan(t, uuid.Nil, uuid.Nil, "2024-03-01", "2024-03-10")
			server := givenServer(t, loan)

			// act
			rec, body := server.do(t, http.MethodPatch, "/api/loans/"+loan.ID.String(), tc.body)

			// assert
			require.Equal(t, tc.expectedCode, rec.Code, rec.Body.String())

			if tc.expectedErrKind != "" {
				assert.Equal(t, tc.expectedErrKind, body.Get("error").ToString())
				return
			}

			assert.Equal(t, tc.expectedDueOn, body.Get("due_on").ToString())
			assert.Equal(t, tc.expectedStatus, body.Get("status").ToString())
		})
	}
}

func Test_UpdateLoan_ReturnedLoan_IsInvalidState(t *testing.T) {
	loan := GivenReturnedLoan(t, uuid.Nil, uuid.Nil, "2024-03-01", "2024-03-10", "2024-03-02")
	server := givenServer(t, loan)

	renew, renewBody := server.do(t, http.MethodPatch, "/api/loans/"+loan.ID.String(), `{"action":"renew"}`)
	again, againBody := server.do(t, http.MethodPatch, "/api/loans/"+loan.ID.String(), `{"action":"return"}`)

	assert.Equal(t, http.StatusConflict, renew.Code)
	assert.Equal(t, "invalid_state", renewBody.Get("error").ToString())
	assert.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "2024-03-02", againBody.Get("returned_on").ToString())
}

func Test_ListLoans_FiltersByStatus(t *testing.T) {
	// arrange
	overdue := GivenActiveLoan(t, uuid.Nil, uuid.Nil, "2024-02-01", "2024-02-10")
	returned := GivenReturnedLoan(t, uuid.Nil, uuid.Nil, "2024-01-01", "2024-01-10", "2024-01-05")
	server := givenServer(t, overdue, returned)

	// act
	all, allBody := server.do(t, http.MethodGet, "/api/loans", "")
	filtered, filteredBody := server.do(t, http.MethodGet, "/api/loans?status=Overdue&user_id="+server.userID.String(), "")
	invalid, _ := server.do(t, http.MethodGet, "/api/loans?status=Lost", "")

	// assert
	assert.Equal(t, http.StatusOK, all.Code)
	assert.Equal(t, 2, allBody.Get("count").ToInt())
	assert.Equal(t, overdue.ID.String(), allBody.Get("loans", 0, "id").ToString())

	assert.Equal(t, http.StatusOK, filtered.Code)
	assert.Equal(t, 1, filteredBody.Get("count").ToInt())
	assert.Equal(t, "Overdue", filteredBody.Get("loans", 0, "status").ToString())

	assert.Equal(t, http.StatusBadRequest, invalid.Code)
}

func Test_LoanSummaries(t *testing.T) {
	// arrange
	overdue := GivenActiveLoan(t, uuid.Nil, uuid.Nil, "2024-02-01", "2024-02-10")
	returned := GivenReturnedLoan(t, uuid.Nil, uuid.Nil, "2024-01-01", "2024-01-10", "2024-01-05")
	server := givenServer(t, overdue, returned)

	// act
	users, usersBody := server.do(t, http.MethodGet, "/api/users/"+server.userID.String()+"/loan-summary", "")
	books, booksBody := server.do(t, http.MethodGet, "/api/books/"+uuid.NewString()+"/loan-summary", "")

	// assert
	assert.Equal(t, http.StatusOK, users.Code)
	assert.Equal(t, 1, usersBody.Get("overdue").ToInt())
	assert.Equal(t, 1, usersBody.Get("returned").ToInt())
	assert.Equal(t, 2, usersBody.Get("total").ToInt())
	assert.False(t, usersBody.Get("deletable").ToBool())

	assert.Equal(t, http.StatusOK, books.Code)
	assert.Equal(t, 0, booksBody.Get("total").ToInt())
	assert.True(t, booksBody.Get("deletable").ToBool())
}

func Test_LoanSummary_NilID_IsBadRequest(t *testing.T) {
	server := givenServer(t, GivenActiveLoan(t, uuid.Nil, uuid.Nil, "2024-03-01", "2024-03-10"))

	rec, body := server.do(t, http.MethodGet, "/api/users/"+uuid.Nil.String()+"/loan-summary", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_argument", body.Get("error").ToString())
}

func Test_DeleteLoan(t *testing.T) {
	loan := GivenActiveLoan(t, uuid.Nil, uuid.Nil, "2024-03-01", "2024-03-10")
	server := givenServer(t, loan)

	deleted, _ := server.do(t, http.MethodDelete, "/api/loans/"+loan.ID.String(), "")
	again, _ := server.do(t, http.MethodDelete, "/api/loans/"+loan.ID.String(), "")
	get, _ := server.do(t, http.MethodGet, "/api/loans/"+loan.ID.String(), "")

	assert.Equal(t, http.StatusNoContent, deleted.Code)
	assert.Equal(t, http.StatusNotFound, again.Code)
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func Test_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := GivenDirectory(GivenUniqueID(t), "Ada", GivenUniqueID(t), "Dune")
	engine, err := circulation.NewEngine(memoryengine.NewLoanStore(), dir, dir, GivenPolicyAt(t, "2024-03-05"))
	require.NoError(t, err)

	healthy := true
	handler, err := httpapi.NewHandler(engine, httpapi.WithHealthCheck(func(context.Context) error {
		if healthy {
			return nil
		}

		return errors.New("database down")
	}))
	require.NoError(t, err)
	router := httpapi.NewRouter(handler)

	up := httptest.NewRecorder()
	router.ServeHTTP(up, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	healthy = false
	down := httptest.NewRecorder()
	router.ServeHTTP(down, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, up.Code)
	assert.Equal(t, http.StatusServiceUnavailable, down.Code)
}

func Test_StatusCodeOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, httpapi.StatusCodeOf(core.NotFound("x")))
	assert.Equal(t, http.StatusBadRequest, httpapi.StatusCodeOf(core.InvalidArgument("x")))
	assert.Equal(t, http.StatusConflict, httpapi.StatusCodeOf(core.Conflict("x")))
	assert.Equal(t, http.StatusConflict, httpapi.StatusCodeOf(core.InvalidState("x")))
	assert.Equal(t, http.StatusServiceUnavailable, httpapi.StatusCodeOf(core.Unavailable(errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, httpapi.StatusCodeOf(errors.New("x")))
}

func Test_NewHandler_RejectsNilEngine(t *testing.T) {
	_, err := httpapi.NewHandler(nil)

	assert.ErrorIs(t, err, httpapi.ErrNilEngine)
}
