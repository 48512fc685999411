// Package ui renders styled output for custdesk's one-shot commands.
//
// These components render once and return a string; the interactive screen
// lives in package tui.
//
//   - Header: command banner with the resolved endpoint
//   - Result: success/failure box carrying the status message
//   - RenderCustomerTable: collection table built from customer.Fields
//
// Example:
//
//	fmt.Println(ui.NewHeader("Customer List", "custdesk list",
//	    ui.Param{Key: "Service", Value: baseURL}).Render())
//	fmt.Println(ui.RenderCustomerTable(customers))
package ui
