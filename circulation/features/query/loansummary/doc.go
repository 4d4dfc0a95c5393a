// Package loansummary implements the per-user and per-book loan summary: counts per effective
// status, the total and whether the user or book could be deleted (it never had a loan).
package loansummary
