// Package spies provides test doubles that capture logs, metrics and spans for assertions.
package spies
