package shell

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// LoanStore is the full loan store contract as implemented by the storage engines.
// Feature handlers declare narrower interfaces for what they actually use.
type LoanStore interface {
	Insert(ctx context.Context, loan loanstore.StorableLoan) (uuid.UUID, error)
	CheckConflictAndInsert(ctx context.Context, loan loanstore.StorableLoan) error
	GetByID(ctx context.Context, loanID uuid.UUID) (loanstore.StorableLoan, error)
	ListByFilter(ctx context.Context, filter loanstore.Filter) (loanstore.StorableLoans, error)
	Update(ctx context.Context, loanID uuid.UUID, patch loanstore.Patch) error
	Delete(ctx context.Context, loanID uuid.UUID) error
}

// UserDirectory resolves users owned by an external system.
type UserDirectory interface {
	LookupUser(ctx context.Context, userID uuid.UUID) (name string, found bool, err error)
}

// BookDirectory resolves books owned by an external system.
type BookDirectory interface {
	LookupBook(ctx context.Context, bookID uuid.UUID) (title string, found bool, err error)
}

// Command represents the contract for all command types.
// The CommandType method is used for observability and routing.
type Command interface {
	CommandType() string
}

// CommandHandler processes a command and reports the business outcome.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryHandler processes a query and returns its result.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
