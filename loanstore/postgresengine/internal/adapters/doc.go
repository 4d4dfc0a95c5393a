// Package adapters provide database adapter implementations for the PostgreSQL loan store.
//
// Three PostgreSQL client libraries are supported: pgx.Pool, sql.DB and sqlx.DB.
// All adapters expose the same DBAdapter interface, so the loan store does not care which one it runs on.
package adapters
