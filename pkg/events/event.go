package events

import (
	"strings"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TRANSACTION_APPROVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Ledger event codes. The NATS subject is "events.<code>".
const (
	TransactionCreated    = "TRANSACTION_CREATED"
	TransactionApproved   = "TRANSACTION_APPROVED"
	TransactionRejected   = "TRANSACTION_REJECTED"
	TransactionDeleted    = "TRANSACTION_DELETED"
	RefundIssued          = "REFUND_ISSUED"
	RefundRequestCreated  = "REFUND_REQUEST_CREATED"
	RefundRequestApproved = "REFUND_REQUEST_APPROVED"
	RefundRequestRejected = "REFUND_REQUEST_REJECTED"
)

const SubjectPrefix = "events."

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// TypeFromSubject strips the stream prefix from a NATS subject.
func TypeFromSubject(subject string) string {
	return strings.TrimPrefix(subject, SubjectPrefix)
}
