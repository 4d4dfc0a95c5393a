// Package fixtures provides given… helpers that arrange loans, directories, stores and date policies
// for the loan engine tests. Everything is in memory, no database is needed.
package fixtures
