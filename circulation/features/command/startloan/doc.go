// Package startloan implements the Start Loan use case.
//
// A registered user borrows a book that is not currently on loan. The loan starts today, is Active
// and must be due today or later. The handler reads the facts (user, book, open loans of the book),
// delegates the business rules to the pure Decide function and persists the loan with one atomic
// check-and-insert, so two concurrent requests for the same book cannot both succeed.
// A lost race is retried once, re-reading and re-deciding, before it surfaces as Conflict.
package startloan
