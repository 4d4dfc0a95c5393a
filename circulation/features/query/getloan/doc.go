// Package getloan implements the single loan read: the stored loan with its effective status,
// elapsed and remaining days, the borrower name and the book title.
package getloan
