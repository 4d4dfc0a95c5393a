package listloans

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

const (
	queryType = "ListLoans"
)

// Query represents the intent to list loans. Zero fields do not restrict the result.
type Query struct {
	Status core.Status
	UserID uuid.UUID
	BookID uuid.UUID
}

// BuildQuery creates a new Query. An empty status lists every loan; any status other than
// Active, Overdue or Returned is rejected with an InvalidArgument error.
func BuildQuery(status string, userID uuid.UUID, bookID uuid.UUID) (Query, error) {
	query := Query{UserID: userID, BookID: bookID}

	if status == "" {
		return query, nil
	}

	parsed, err := core.ParseStatus(status)
	if err != nil {
		return Query{}, err
	}

	query.Status = parsed

	return query, nil
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
