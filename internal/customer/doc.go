// Package customer defines the customer record and the HTTP gateway to the
// remote customer collection.
//
// # Schema
//
// Fields is the single ordered description of the customer shape:
//
//	id, name, email, contact, gender, address
//
// Draft.Validate walks it to find the first blank field, and table renderers
// walk it to build their columns.
//
// # Gateway
//
// Client issues one request per call against a configured collection URL:
//
//	client := customer.NewClient("http://localhost:8080/customerapi")
//	customers, err := client.ListAll(ctx)
//	if customer.IsNetworkError(err) {
//	    // service unreachable
//	}
//
// Every failure is a *ServiceError. A 404 from GetByID is reported with
// ErrTypeNotFound.
package customer
