package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
)

// ErrNilEngine is returned when a Handler is built without an engine.
var ErrNilEngine = errors.New("loan engine must not be nil")

// LoanEngine is the part of circulation.Engine the HTTP layer calls.
type LoanEngine interface {
	StartLoan(ctx context.Context, userID, bookID uuid.UUID, dueOn calendar.Date) (core.LoanView, error)
	Return(ctx context.Context, loanID uuid.UUID) (core.LoanView, error)
	Renew(ctx context.Context, loanID uuid.UUID, extraDays int) (core.LoanView, error)
	RenewByDefaultPeriod(ctx context.Context, loanID uuid.UUID) (core.LoanView, error)
	Reschedule(ctx context.Context, loanID uuid.UUID, newDueOn calendar.Date) (core.LoanView, error)
	SetStatus(ctx context.Context, loanID uuid.UUID, status string) (core.LoanView, error)
	GetLoan(ctx context.Context, loanID uuid.UUID) (core.LoanView, error)
	ListLoans(ctx context.Context, status string, userID, bookID uuid.UUID) ([]core.LoanView, error)
	Summarize(ctx context.Context, scope string, id uuid.UUID) (core.Summary, error)
}

// LoanDeleter removes a loan record for good. It is the administrative path around the engine.
type LoanDeleter interface {
	Delete(ctx context.Context, loanID uuid.UUID) error
}

// HealthCheck reports whether the backing services are reachable.
type HealthCheck func(ctx context.Context) error

// Handler serves the loan routes.
type Handler struct {
	engine       LoanEngine
	deleter      LoanDeleter
	healthCheck  HealthCheck
	storeTimeout time.Duration
	logger       shell.Logger
}

// Option defines a functional option for configuring a Handler.
type Option func(*Handler)

// WithLoanDeleter enables DELETE /api/loans/:id.
func WithLoanDeleter(deleter LoanDeleter, storeTimeout time.Duration) Option {
	return func(h *Handler) {
		h.deleter = deleter
		h.storeTimeout = storeTimeout
	}
}

// WithHealthCheck makes /healthz answer 503 while check fails.
func WithHealthCheck(check HealthCheck) Option {
	return func(h *Handler) {
		h.healthCheck = check
	}
}

// WithLogger sets the logger for request and failure logs.
func WithLogger(logger shell.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a Handler on top of engine.
func NewHandler(engine LoanEngine, opts ...Option) (*Handler, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}

	h := &Handler{engine: engine}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// RegisterRoutes binds the handler methods to router.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		api.GET("/loans", h.ListLoans)
		api.GET("/loans/:id", h.GetLoan)
		api.POST("/loans", h.StartLoan)
		api.PATCH("/loans/:id", h.UpdateLoan)
		api.GET("/users/:id/loan-summary", h.summary(core.ScopeUser))
		api.GET("/books/:id/loan-summary", h.summary(core.ScopeBook))

		if h.deleter != nil {
			api.DELETE("/loans/:id", h.DeleteLoan)
		}
	}
}

// NewRouter returns a gin engine with recovery, request logging and all routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))
	h.RegisterRoutes(router)

	return router
}
