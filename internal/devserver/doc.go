// Package devserver serves an in-memory customer collection over HTTP.
//
// Routes are mounted under /customerapi:
//
//	GET    /all          all customers, ordered by id
//	GET    /get/{id}     one customer, or 404 "Customer with ID n not found."
//	POST   /add          201 with the stored record, 409 on a taken id
//	PUT    /update       full replacement, 404 when the id is unknown
//	DELETE /delete/{id}  200 "Customer with ID n deleted successfully."
//
// It backs `custdesk serve` and the client and manager tests.
package devserver
