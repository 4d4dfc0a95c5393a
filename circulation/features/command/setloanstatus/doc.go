// Package setloanstatus implements the administrative status override of a loan.
//
// Only Active, Overdue and Returned are accepted. Returned behaves like a return; Active and Overdue
// keep the loan intrinsically Active, because Overdue is never stored: it is derived from the due date
// whenever the loan is read. A returned loan cannot be overridden.
package setloanstatus
