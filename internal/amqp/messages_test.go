package amqp

import (
	"testing"
	"time"
)

func TestTransactionEventRoundtrip(t *testing.T) {
	e := NewTransactionEvent(EventPaid, 42, "Rent")
	if e.Timestamp.IsZero() {
		t.Fatalf("event should be timestamped")
	}

	body, err := e.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	parsed, err := TransactionEventFromJSON(body)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if parsed.Kind != EventPaid || parsed.TransactionID != 42 || parsed.Description != "Rent" {
		t.Fatalf("parsed = %+v", parsed)
	}
	if !parsed.Timestamp.Truncate(time.Second).Equal(e.Timestamp.Truncate(time.Second)) {
		t.Fatalf("timestamp drifted: %v vs %v", parsed.Timestamp, e.Timestamp)
	}
}

func TestTransactionEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte("{broken")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
