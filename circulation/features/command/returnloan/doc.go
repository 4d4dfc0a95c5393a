// Package returnloan implements the Return Loan use case.
//
// Returning is terminal: the loan becomes Returned with today's return date and never changes again.
// Returning an already returned loan is an idempotent no-op that keeps the first return date.
package returnloan
