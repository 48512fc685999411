// Package tui implements the interactive customer screen.
//
// The screen is a single Bubble Tea model with three panels, each rendered
// inside the shared application container (RenderApplicationContainer):
//   - Form: the edit buffer, one row per customer.Fields entry; gender is a
//     selector cycling through customer.Genders
//   - Table: the collection cache (bubbles/table), columns from the schema
//   - Lookup: fetch by id, result shown as indented JSON
//
// All state lives in a manager.Manager. Key handlers call its operations and
// return the tea.Cmd it produces; result messages are handed back to
// Manager.Update on the UI goroutine.
//
// # Keys
//
//	tab / shift+tab   move between panels
//	ctrl+s            add or update the form contents
//	esc               leave edit mode and clear the form
//	e / enter         (table) edit the selected row
//	d                 (table) delete the selected row
//	r                 (table) refresh the collection
//	enter             (lookup) fetch the typed id
//	q / ctrl+c        quit
//
// # Usage
//
//	mgr := manager.New(customer.NewClient(baseURL))
//	if err := tui.Run(mgr, baseURL); err != nil {
//	    return err
//	}
package tui
