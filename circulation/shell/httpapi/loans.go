package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
)

// Health answers 200 while the health check passes.
func (h *Handler) Health(c *gin.Context) {
	if h.healthCheck != nil {
		if err := h.healthCheck(c.Request.Context()); err != nil {
			h.writeError(c, core.Unavailable(err))
			return
		}
	}

	h.writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

// ListLoans lists loans filtered by the status, user_id and book_id query parameters.
func (h *Handler) ListLoans(c *gin.Context) {
	userID, err := optionalID(c.Query("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	bookID, err := optionalID(c.Query("book_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	views, err := h.engine.ListLoans(c.Request.Context(), c.Query("status"), userID, bookID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeJSON(c, http.StatusOK, loanListResponseFrom(views))
}

// GetLoan returns one loan.
func (h *Handler) GetLoan(c *gin.Context) {
	loanID, ok := h.loanIDParam(c)
	if !ok {
		return
	}

	view, err := h.engine.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeJSON(c, http.StatusOK, loanResponseFrom(view))
}

// StartLoan creates a loan and answers 201.
func (h *Handler) StartLoan(c *gin.Context) {
	req, err := decodeStartLoan(c.Request.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}

	view, err := h.engine.StartLoan(c.Request.Context(), req.UserID, req.BookID, req.DueOn)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeJSON(c, http.StatusCreated, loanResponseFrom(view))
}

// UpdateLoan applies a return, renew or reschedule action, or a status override.
func (h *Handler) UpdateLoan(c *gin.Context) {
	loanID, ok := h.loanIDParam(c)
	if !ok {
		return
	}

	req, err := decodeUpdateLoan(c.Request.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ctx := c.Request.Context()

	var view core.LoanView

	switch {
	case req.Action == actionReturn:
		view, err = h.engine.Return(ctx, loanID)
	case req.Action == actionRenew && req.HasDays:
		view, err = h.engine.Renew(ctx, loanID, req.Days)
	case req.Action == actionRenew:
		view, err = h.engine.RenewByDefaultPeriod(ctx, loanID)
	case req.Action == actionReschedule:
		view, err = h.engine.Reschedule(ctx, loanID, req.NewDueOn)
	default:
		view, err = h.engine.SetStatus(ctx, loanID, req.Status)
	}

	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeJSON(c, http.StatusOK, loanResponseFrom(view))
}

// DeleteLoan hard-deletes a loan and answers 204.
func (h *Handler) DeleteLoan(c *gin.Context) {
	loanID, ok := h.loanIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := shell.StoreContext(c.Request.Context(), h.storeTimeout)
	defer cancel()

	if err := h.deleter.Delete(ctx, loanID); err != nil {
		h.writeError(c, shell.DomainErrorFrom(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) summary(scope core.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			h.writeError(c, err)
			return
		}

		summary, err := h.engine.Summarize(c.Request.Context(), string(scope), id)
		if err != nil {
			h.writeError(c, err)
			return
		}

		h.writeJSON(c, http.StatusOK, summaryResponseFrom(summary))
	}
}

func (h *Handler) loanIDParam(c *gin.Context) (uuid.UUID, bool) {
	loanID, err := parseID(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return uuid.Nil, false
	}

	return loanID, true
}
