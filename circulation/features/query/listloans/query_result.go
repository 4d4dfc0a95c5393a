package listloans

import (
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
)

// LoanList represents the query result.
type LoanList struct {
	Loans []core.LoanView
	Count int
}
