// Package oteladapters implements the loanstore observability interfaces on top of OpenTelemetry.
//
// The same collectors serve the PostgreSQL loan store and the command/query wrappers of the
// circulation engine, since both depend on the interfaces declared in package loanstore.
package oteladapters
