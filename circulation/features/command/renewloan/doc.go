// Package renewloan implements the Renew Loan use case: the due date of an open loan moves
// forward by a positive number of days, seven unless the caller says otherwise.
// Returned loans cannot be renewed.
package renewloan
