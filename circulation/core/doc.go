// Package core contains the pure domain model of the loan lifecycle: the Loan record,
// effective status derivation, per-user/per-book summaries, the decision result type used by
// all Decide functions, and the error taxonomy every operation reports through.
//
// Nothing in this package performs I/O or reads the wall clock; "today" is always passed in.
package core
