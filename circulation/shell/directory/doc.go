// Package directory provides the users and books directories the loan engine resolves ids against.
//
// SQLDirectory reads from plain users/books tables through sqlx; MemoryDirectory serves tests
// and the in-memory mode of the API server.
package directory
