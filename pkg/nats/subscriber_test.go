package nats

import (
	"testing"

	"photostudio-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePrefersPayloadType(t *testing.T) {
	data := []byte(`{"event_type":"TRANSACTION_APPROVED","transaction_id":"abc","occurred_at":"2024-03-01T10:00:00Z"}`)

	evt, err := decode("events.SOMETHING_ELSE", data)
	require.NoError(t, err)

	assert.Equal(t, events.TransactionApproved, evt.EventType())
	assert.Equal(t, "abc", evt.Payload()["transaction_id"])
	assert.Equal(t, 2024, evt.Timestamp().Year())
}

func TestDecodeFallsBackToSubject(t *testing.T) {
	evt, err := decode("events.REFUND_ISSUED", []byte(`{"amount":"10.00"}`))
	require.NoError(t, err)
	assert.Equal(t, events.RefundIssued, evt.EventType())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode("events.X", []byte("not json"))
	assert.Error(t, err)
}
