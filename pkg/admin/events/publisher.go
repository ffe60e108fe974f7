package events

import (
	"context"
	"time"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/pkg/logger"
	pkgEvents "photostudio-be/pkg/events"
)

// Publisher abstracts event publishing for ledger and review operations.
// Calls never fail the caller; delivery problems are logged.
type Publisher interface {
	PublishTransactionCreated(ctx context.Context, txn *entity.Transaction)
	PublishTransactionApproved(ctx context.Context, txn *entity.Transaction)
	PublishTransactionRejected(ctx context.Context, txn *entity.Transaction)
	PublishTransactionDeleted(ctx context.Context, txn *entity.Transaction)
	PublishRefundIssued(ctx context.Context, original, refund *entity.Transaction)
	PublishRefundRequestCreated(ctx context.Context, req *entity.TransactionRequest)
	PublishRefundRequestApproved(ctx context.Context, req *entity.TransactionRequest)
	PublishRefundRequestRejected(ctx context.Context, req *entity.TransactionRequest)
}

// Sink is the transport side, satisfied by *nats.Publisher.
type Sink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// NatsPublisher implements Publisher on top of a Sink. A nil sink turns every
// call into a no-op, which is how the service runs without NATS.
type NatsPublisher struct {
	sink   Sink
	logger logger.ILogger
}

func NewNatsPublisher(sink Sink, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		sink:   sink,
		logger: logger,
	}
}

func (p *NatsPublisher) PublishTransactionCreated(ctx context.Context, txn *entity.Transaction) {
	p.publish(ctx, pkgEvents.TransactionCreated, transactionPayload(txn))
}

func (p *NatsPublisher) PublishTransactionApproved(ctx context.Context, txn *entity.Transaction) {
	p.publish(ctx, pkgEvents.TransactionApproved, transactionPayload(txn))
}

func (p *NatsPublisher) PublishTransactionRejected(ctx context.Context, txn *entity.Transaction) {
	data := transactionPayload(txn)
	data["reason"] = txn.FailureReason
	p.publish(ctx, pkgEvents.TransactionRejected, data)
}

func (p *NatsPublisher) PublishTransactionDeleted(ctx context.Context, txn *entity.Transaction) {
	p.publish(ctx, pkgEvents.TransactionDeleted, transactionPayload(txn))
}

// PublishRefundIssued describes the new refund row and points back at the
// refunded original.
func (p *NatsPublisher) PublishRefundIssued(ctx context.Context, original, refund *entity.Transaction) {
	data := transactionPayload(refund)
	data["original_transaction_id"] = original.ID.String()
	data["original_reference"] = original.Reference
	data["reason"] = refund.RefundReason
	p.publish(ctx, pkgEvents.RefundIssued, data)
}

func (p *NatsPublisher) PublishRefundRequestCreated(ctx context.Context, req *entity.TransactionRequest) {
	p.publish(ctx, pkgEvents.RefundRequestCreated, requestPayload(req))
}

func (p *NatsPublisher) PublishRefundRequestApproved(ctx context.Context, req *entity.TransactionRequest) {
	p.publish(ctx, pkgEvents.RefundRequestApproved, requestPayload(req))
}

func (p *NatsPublisher) PublishRefundRequestRejected(ctx context.Context, req *entity.TransactionRequest) {
	data := requestPayload(req)
	data["reason"] = req.RejectionReason
	p.publish(ctx, pkgEvents.RefundRequestRejected, data)
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.sink == nil {
		return
	}

	now := time.Now()
	data["occurred_at"] = now
	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}

	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("LEDGER", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func transactionPayload(txn *entity.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"transaction_id":   txn.ID.String(),
		"reference":        txn.Reference,
		"booking_id":       txn.Booking.ID.String(),
		"customer_id":      txn.Customer.ID.String(),
		"amount":           txn.Amount.StringFixed(2),
		"transaction_type": string(txn.TransactionType),
		"status":           string(txn.Status),
		"entity_type":      "transaction",
		"entity_id":        txn.ID.String(),
	}
}

func requestPayload(req *entity.TransactionRequest) map[string]interface{} {
	data := map[string]interface{}{
		"request_id":     req.ID.String(),
		"transaction_id": req.Transaction.ID.String(),
		"booking_id":     req.Booking.ID.String(),
		"customer_id":    req.Customer.ID.String(),
		"status":         string(req.Status),
		"entity_type":    "transaction_request",
		"entity_id":      req.ID.String(),
	}
	if txn, ok := req.Transaction.Get(); ok {
		data["reference"] = txn.Reference
		data["amount"] = txn.Amount.StringFixed(2)
	}
	return data
}
