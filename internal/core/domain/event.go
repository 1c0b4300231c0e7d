package domain

import "time"

// Customer lifecycle event types.
const (
	EventCreated = "CREATED"
	EventUpdated = "UPDATED"
	EventDeleted = "DELETED"
)

// CustomerEvent is published on every successful customer mutation. It is
// built synchronously at the point of the store write and delivered
// asynchronously; its loss never rolls back the mutation.
type CustomerEvent struct {
	EventType string    `json:"event_type"`
	Customer  Customer  `json:"customer"`
	Timestamp time.Time `json:"timestamp"`
}

// NewCustomerEvent snapshots the customer at the moment of the mutation.
func NewCustomerEvent(eventType string, customer Customer) CustomerEvent {
	return CustomerEvent{
		EventType: eventType,
		Customer:  customer,
		Timestamp: time.Now().UTC(),
	}
}
