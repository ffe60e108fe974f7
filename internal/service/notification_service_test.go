package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/testutil/memuow"
	"photostudio-be/pkg/events"
	pktNats "photostudio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDelivery struct {
	mu   sync.Mutex
	sent []dto.LedgerEventMessage
}

func (d *recordingDelivery) Broadcast(ctx context.Context, msg dto.LedgerEventMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, msg)
}

type recordingQueue struct {
	jobs []dto.EmailJob
}

func (q *recordingQueue) Enqueue(ctx context.Context, job dto.EmailJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) Consume(ctx context.Context) error { return nil }

type recordingSource struct {
	subject, durable string
	handler          pktNats.EventHandler
}

func (s *recordingSource) Subscribe(subject string, durableName string, handler pktNats.EventHandler) error {
	s.subject, s.durable, s.handler = subject, durableName, handler
	return nil
}

type recordingMailer struct {
	mu   sync.Mutex
	to   []string
	fail error
}

func (m *recordingMailer) Send(toEmail, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, toEmail)
	return m.fail
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.to)
}

func TestNotificationServiceSubscribesToAllEvents(t *testing.T) {
	source := &recordingSource{}
	svc := NewNotificationService(memuow.NewStore(), source, nil, nil, logger.NewNopLogger())
	svc.Start()

	assert.Equal(t, "events.>", source.subject)
	assert.Equal(t, "ledger-notifier", source.durable)
	assert.NotNil(t, source.handler)
}

func TestHandleEventPushesAndQueuesCustomerMail(t *testing.T) {
	store := memuow.NewStore()
	fx := memuow.Seed(store)
	delivery := &recordingDelivery{}
	queue := &recordingQueue{}
	svc := NewNotificationService(store, &recordingSource{}, delivery, queue, logger.NewNopLogger())

	evt := events.BaseEvent{
		Type: events.TransactionRejected,
		Data: map[string]interface{}{
			"customer_id": fx.Customer.ID.String(),
			"reference":   "TXN-0A1B2C3D",
			"amount":      "5000.00",
			"reason":      "Proof unreadable",
		},
		OccurredAt: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.HandleEvent(context.Background(), evt))

	require.Len(t, delivery.sent, 1)
	assert.Equal(t, "TRANSACTION_REJECTED", delivery.sent[0].Type)
	assert.Equal(t, "2024-07-01T10:00:00Z", delivery.sent[0].OccurredAt)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, fx.Customer.Email, queue.jobs[0].To)
	assert.Equal(t, "Payment could not be confirmed", queue.jobs[0].Subject)
	assert.Contains(t, queue.jobs[0].Body, "Proof unreadable")
}

func TestHandleEventInternalEventsSkipMail(t *testing.T) {
	store := memuow.NewStore()
	fx := memuow.Seed(store)
	delivery := &recordingDelivery{}
	queue := &recordingQueue{}
	svc := NewNotificationService(store, &recordingSource{}, delivery, queue, logger.NewNopLogger())

	evt := events.NewEvent("events."+events.RefundRequestCreated, map[string]interface{}{"customer_id": fx.Customer.ID.String()})
	require.NoError(t, svc.HandleEvent(context.Background(), evt))

	require.Len(t, delivery.sent, 1)
	assert.Equal(t, events.RefundRequestCreated, delivery.sent[0].Type)
	assert.Empty(t, queue.jobs)
}

func TestHandleEventUnknownCustomerIsAcked(t *testing.T) {
	queue := &recordingQueue{}
	svc := NewNotificationService(memuow.NewStore(), &recordingSource{}, nil, queue, logger.NewNopLogger())

	evt := events.NewEvent(events.RefundIssued, map[string]interface{}{"customer_id": uuid.NewString()})
	assert.NoError(t, svc.HandleEvent(context.Background(), evt))

	evt = events.NewEvent(events.RefundIssued, map[string]interface{}{})
	assert.NoError(t, svc.HandleEvent(context.Background(), evt))
	assert.Empty(t, queue.jobs)
}

func TestMailQueueDeliversThroughWatermill(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NopLogger{})
	defer pubSub.Close()

	m := &recordingMailer{}
	queue := NewMailQueue(pubSub, "ledger_mail", m, logger.NewNopLogger())
	require.NoError(t, queue.Consume(ctx))

	require.NoError(t, queue.Enqueue(ctx, dto.EmailJob{To: "rina@example.com", Subject: "Refund issued", Body: "<p>ok</p>"}))
	require.NoError(t, queue.Enqueue(ctx, dto.EmailJob{To: "budi@example.com", Subject: "Refund issued", Body: "<p>ok</p>"}))

	assert.Eventually(t, func() bool { return m.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestMailQueueSurvivesSendFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	m := &recordingMailer{fail: assert.AnError}
	queue := NewMailQueue(pubSub, "ledger_mail", m, logger.NewNopLogger())
	require.NoError(t, queue.Consume(ctx))

	require.NoError(t, queue.Enqueue(ctx, dto.EmailJob{To: "a@example.com"}))
	require.NoError(t, queue.Enqueue(ctx, dto.EmailJob{To: "b@example.com"}))

	assert.Eventually(t, func() bool { return m.count() == 2 }, time.Second, 10*time.Millisecond)
}
