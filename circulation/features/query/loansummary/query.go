package loansummary

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

const (
	queryType = "LoanSummary"
)

// Query represents the intent to summarize the loans of one user or one book.
type Query struct {
	Scope core.Scope
	ID    uuid.UUID
}

// BuildQuery creates a new Query. Scopes other than "user" and "book" are rejected with InvalidArgument,
// as is the nil UUID, which no loan can reference.
func BuildQuery(scope string, id uuid.UUID) (Query, error) {
	parsed, err := core.ParseScope(scope)
	if err != nil {
		return Query{}, err
	}

	if id == uuid.Nil {
		return Query{}, core.InvalidArgument(core.FailureReasonMissingID)
	}

	return Query{Scope: parsed, ID: id}, nil
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
