package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
)

const contentTypeJSON = "application/json; charset=utf-8"

type loanResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	BookID        string        `json:"book_id"`
	UserName      string        `json:"user_name"`
	BookTitle     string        `json:"book_title"`
	BorrowedOn    calendar.Date `json:"borrowed_on"`
	DueOn         calendar.Date `json:"due_on"`
	ReturnedOn    calendar.Date `json:"returned_on"`
	Status        string        `json:"status"`
	ElapsedDays   int           `json:"elapsed_days"`
	RemainingDays int           `json:"remaining_days"`
}

type loanListResponse struct {
	Loans []loanResponse `json:"loans"`
	Count int            `json:"count"`
}

type summaryResponse struct {
	Active    int  `json:"active"`
	Overdue   int  `json:"overdue"`
	Returned  int  `json:"returned"`
	Total     int  `json:"total"`
	Deletable bool `json:"deletable"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func loanResponseFrom(view core.LoanView) loanResponse {
	return loanResponse{
		ID:            view.ID.String(),
		UserID:        view.UserID.String(),
		BookID:        view.BookID.String(),
		UserName:      view.UserName,
		BookTitle:     view.BookTitle,
		BorrowedOn:    view.BorrowedOn,
		DueOn:         view.DueOn,
		Status:        view.Status.String(),
		ElapsedDays:   view.ElapsedDays,
		ReturnedOn:    view.ReturnedOn,
		RemainingDays: view.RemainingDays,
	}
}

func loanListResponseFrom(views []core.LoanView) loanListResponse {
	loans := make([]loanResponse, 0, len(views))
	for _, view := range views {
		loans = append(loans, loanResponseFrom(view))
	}

	return loanListResponse{Loans: loans, Count: len(loans)}
}

func summaryResponseFrom(summary core.Summary) summaryResponse {
	return summaryResponse(summary)
}

// StatusCodeOf maps an error kind to its HTTP status. Unclassified errors are 500.
func StatusCodeOf(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrConflict), errors.Is(err, core.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, core.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(c *gin.Context, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		h.logError(c, "encoding response failed", err)
		c.Status(http.StatusInternalServerError)

		return
	}

	c.Data(status, contentTypeJSON, data)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := StatusCodeOf(err)
	if status >= http.StatusInternalServerError {
		h.logError(c, "request failed", err)
	}

	h.writeJSON(c, status, errorResponse{
		Error:   shell.ErrorKindLabel(err),
		Message: err.Error(),
	})
}

func (h *Handler) logError(c *gin.Context, msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, logAttrPath, c.FullPath(), "error", err.Error())
	}
}
