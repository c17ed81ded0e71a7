package statechart

// EventID identifies a kind of event within one machine.
type EventID int

// Event is the value delivered to state handlers. The engine copies it onto
// the queue on PostEvent and never inspects the fields; ID and Payload carry
// whatever meaning the caller assigns.
type Event struct {
	ID      EventID
	Payload any
}

// NewEvent creates an Event by value. Small payloads stay on the stack.
func NewEvent(id EventID, payload any) Event {
	return Event{
		ID:      id,
		Payload: payload,
	}
}
