// Package httpapi exposes the loan engine over HTTP with gin.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/loans                      ?status=&user_id=&book_id=
//	GET    /api/loans/:id
//	POST   /api/loans                      {"user_id", "book_id", "due_on"}
//	PATCH  /api/loans/:id                  {"action": "return"|"renew"|"reschedule", "days", "new_due_on"} or {"status"}
//	DELETE /api/loans/:id                  administrative hard delete, only with WithLoanDeleter
//	GET    /api/users/:id/loan-summary
//	GET    /api/books/:id/loan-summary
//
// Error kinds map to 404 (not found), 400 (invalid argument), 409 (conflict, invalid state)
// and 503 (unavailable).
package httpapi
