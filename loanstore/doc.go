// Package loanstore provides the storage contract for loan records.
//
// It defines the scalar DTO StorableLoan, the query Filter, the update Patch and the sentinel errors
// shared by every engine implementation (see the postgresengine and memoryengine sub-packages).
//
// Engines guarantee:
//   - CheckConflictAndInsert is atomic: of two concurrent calls for the same book, at most one succeeds.
//   - Update with a Patch marked OnlyIfOpen only touches a loan that is still open.
//   - ListByFilter returns loans ordered by borrowed date descending, then id descending.
//
// Common usage pattern:
//
//	filter := loanstore.BuildLoanFilter().
//		ForBook(bookID).
//		OpenOnly().
//		Finalize()
//
//	openLoans, err := store.ListByFilter(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	err = store.CheckConflictAndInsert(ctx, newLoan)
package loanstore
