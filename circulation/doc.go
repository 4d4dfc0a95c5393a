// Package circulation exposes the loan lifecycle engine of the community library.
//
// Engine is the single entry point for callers: it composes one handler per use case
// (features/command/*, features/query/*), wraps each with the observable wrappers and turns
// the resulting loans into views with effective status, day counters and display names.
// Every error it returns wraps exactly one of the core taxonomy sentinels.
package circulation
