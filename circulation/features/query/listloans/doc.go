// Package listloans implements the loan listing with an optional effective status filter and
// optional user and book filters. Rows are ordered by borrow date descending, then id descending.
//
// The effective status filter is translated into store criteria (open or closed, due date bounds
// relative to today), so the store never needs to know how statuses are derived.
package listloans
