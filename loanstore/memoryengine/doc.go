// Package memoryengine provides an in-process implementation of the loan store.
//
// It honors the same contract as the PostgreSQL engine, including the atomic
// check-and-insert for open loans, and is used for tests, demos and the "memory" adapter setting.
package memoryengine
