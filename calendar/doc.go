// Package calendar provides the date policy of the loan engine.
//
// All loan dates are calendar dates without a time of day. "Today" is taken from an injected Clock
// and interpreted in one configured time zone, so the same instant always maps to the same date
// no matter where the process runs.
//
// Day differences are whole calendar days: DaysBetween(2024-01-01, 2024-01-08) is 7,
// and swapping the arguments yields -7.
package calendar
