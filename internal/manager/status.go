package manager

// StatusKind classifies the current status message for display.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

// String returns the kind name
func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "none"
	}
}

// Status is the single outcome message of the most recent completed
// operation. Its Kind is set by the operation itself, never derived from Text.
type Status struct {
	Kind StatusKind
	Text string
}

// IsZero reports whether there is no message to show.
func (s Status) IsZero() bool {
	return s.Kind == StatusNone && s.Text == ""
}

// IsError reports whether the message describes a failure.
func (s Status) IsError() bool {
	return s.Kind == StatusError
}

func success(text string) Status {
	return Status{Kind: StatusSuccess, Text: text}
}

func failure(text string) Status {
	return Status{Kind: StatusError, Text: text}
}

// Fixed operator-facing messages. Causes are logged, never shown.
const (
	MsgAdded         = "Customer added successfully."
	MsgAddFailed     = "Error adding customer."
	MsgUpdated       = "Customer updated successfully."
	MsgUpdateFailed  = "Error updating customer."
	MsgDeleteFailed  = "Error deleting customer."
	MsgNotFound      = "Customer not found."
	MsgFetchFailed   = "Failed to fetch customers."
	MsgEditingFormat = "Editing customer with ID %d"
)
