package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) dto.LedgerEventMessage {
	t.Helper()
	select {
	case data := <-ch:
		var msg dto.LedgerEventMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
	return dto.LedgerEventMessage{}
}

func TestHubBroadcastsToEveryClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	first := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	second := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- first
	hub.register <- second

	hub.Broadcast(ctx, dto.LedgerEventMessage{Type: "TRANSACTION_APPROVED", Payload: map[string]interface{}{"reference": "TXN-1A2B3C4D"}})

	for _, c := range []*Client{first, second} {
		msg := receive(t, c.Send)
		assert.Equal(t, "TRANSACTION_APPROVED", msg.Type)
		assert.Equal(t, "TXN-1A2B3C4D", msg.Payload["reference"])
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.register <- client
	hub.unregister <- client
	// A second unregister for the same client is ignored.
	hub.unregister <- client

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	slow := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	slow.Send <- []byte(`{"type":"backlog"}`)
	fast := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- slow
	hub.register <- fast

	hub.Broadcast(ctx, dto.LedgerEventMessage{Type: "REFUND_ISSUED"})
	hub.Broadcast(ctx, dto.LedgerEventMessage{Type: "TRANSACTION_DELETED"})
	assert.Equal(t, "REFUND_ISSUED", receive(t, fast.Send).Type)
	assert.Equal(t, "TRANSACTION_DELETED", receive(t, fast.Send).Type)

	assert.Equal(t, "backlog", receive(t, slow.Send).Type)
	_, ok := <-slow.Send
	assert.False(t, ok, "slow client is dropped instead of blocking the hub")
}

func TestHubBroadcastAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Broadcast(context.Background(), dto.LedgerEventMessage{Type: "TRANSACTION_CREATED"})
		}
		client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
		assert.False(t, hub.attach(client))
		hub.detach(client)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a stopped hub")
	}
}
