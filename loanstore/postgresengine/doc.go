// Package postgresengine provides a PostgreSQL implementation of the loan store.
//
// It works with pgx.Pool, sql.DB or sqlx.DB connections. SQL is built with goqu and executed through
// internal adapters, so all three connection types behave the same.
//
// Starting a loan is a single conditional statement (INSERT ... SELECT ... WHERE NOT EXISTS open loan).
// A partial unique index on open loans per book backs it up: if two transactions race past the
// NOT EXISTS check, the loser gets a unique violation, which is reported as loanstore.ErrConcurrencyConflict.
//
// Basic usage:
//
//	store, err := postgresengine.NewLoanStoreFromPGXPool(pool, postgresengine.WithTableName("loans"))
//	if err != nil {
//		// handle error
//	}
//
//	if err := store.CreateSchema(ctx); err != nil {
//		// handle error
//	}
package postgresengine
