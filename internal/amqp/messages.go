package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds published on transaction changes.
const (
	EventCreated = "created"
	EventDeleted = "deleted"
	EventPaid    = "paid"
	EventUnpaid  = "unpaid"
)

// TransactionEvent is a lightweight change notification for external
// tooling. It carries the record id and kind only; consumers fetch the
// current state from the API, which stays authoritative.
type TransactionEvent struct {
	Kind          string    `json:"kind"`
	TransactionID int64     `json:"transaction_id,omitempty"`
	Description   string    `json:"description,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionEvent builds an event stamped with the current time.
func NewTransactionEvent(kind string, id int64, description string) *TransactionEvent {
	return &TransactionEvent{
		Kind:          kind,
		TransactionID: id,
		Description:   description,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON parses an event from JSON bytes.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
