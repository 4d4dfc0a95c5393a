// Package rescheduleloan implements the Reschedule Loan use case: the due date of an open loan
// is replaced by a new date that must not lie in the past.
package rescheduleloan
