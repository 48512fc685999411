// Package manager holds the state behind the customer screen and the rules
// for changing it.
//
// A Manager owns four pieces of state: the edit buffer (a customer.Draft plus
// the create/edit mode), the collection cache, the lookup result and the
// status message. Operations that need the network do not block. They
// return a tea.Cmd that performs one gateway call and yields a result
// message; Update applies that message and may return a follow-up command,
// such as the list refresh after a successful mutation.
//
// # Submitting
//
// At most one mutation (create, update or delete) is in flight. While one is
// pending, Submit and Delete return nil and change nothing.
//
// # Tokens
//
// Each request is tagged with a sequence number. A result is applied only if
// it answers the latest request of its kind, so a slow list response can never
// overwrite a newer one.
//
// # Driving without Bubble Tea
//
// Drive runs a command chain synchronously:
//
//	m := manager.New(customer.NewClient(baseURL))
//	m.Drive(m.Delete(5))
//	if err := m.ErrStatus(); err != nil {
//	    return err
//	}
package manager
