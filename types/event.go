package types

// EventOperation selects how a scheduled event lands on its new date.
type EventOperation string

const (
	// OpMove relocates the existing event to the new date.
	OpMove EventOperation = "move"

	// OpCopy creates a duplicate of the event on the new date; the server
	// responds with the new event's id.
	OpCopy EventOperation = "copy"
)

// Valid reports whether the operation is one of the known values.
func (op EventOperation) Valid() bool {
	return op == OpMove || op == OpCopy
}

// EventDetails is the payload of the event-details endpoint, shown in the
// inspection popup for a calendar event.
type EventDetails struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Genre       string `json:"genre"`
	Description string `json:"description,omitempty"`
	Employee    string `json:"employee,omitempty"`
}
