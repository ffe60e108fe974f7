// Package eventstub records ledger events instead of sending them.
package eventstub

import (
	"context"
	"sync"

	"photostudio-be/internal/entity"
	pkgEvents "photostudio-be/pkg/events"

	"github.com/google/uuid"
)

type Recorded struct {
	Type     string
	EntityID uuid.UUID
}

type Publisher struct {
	mu     sync.Mutex
	Events []Recorded
}

func (p *Publisher) record(eventType string, id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, Recorded{Type: eventType, EntityID: id})
}

// Types lists recorded event codes in order.
func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		out = append(out, e.Type)
	}
	return out
}

func (p *Publisher) PublishTransactionCreated(_ context.Context, txn *entity.Transaction) {
	p.record(pkgEvents.TransactionCreated, txn.ID)
}

func (p *Publisher) PublishTransactionApproved(_ context.Context, txn *entity.Transaction) {
	p.record(pkgEvents.TransactionApproved, txn.ID)
}

func (p *Publisher) PublishTransactionRejected(_ context.Context, txn *entity.Transaction) {
	p.record(pkgEvents.TransactionRejected, txn.ID)
}

func (p *Publisher) PublishTransactionDeleted(_ context.Context, txn *entity.Transaction) {
	p.record(pkgEvents.TransactionDeleted, txn.ID)
}

func (p *Publisher) PublishRefundIssued(_ context.Context, _, refund *entity.Transaction) {
	p.record(pkgEvents.RefundIssued, refund.ID)
}

func (p *Publisher) PublishRefundRequestCreated(_ context.Context, req *entity.TransactionRequest) {
	p.record(pkgEvents.RefundRequestCreated, req.ID)
}

func (p *Publisher) PublishRefundRequestApproved(_ context.Context, req *entity.TransactionRequest) {
	p.record(pkgEvents.RefundRequestApproved, req.ID)
}

func (p *Publisher) PublishRefundRequestRejected(_ context.Context, req *entity.TransactionRequest) {
	p.record(pkgEvents.RefundRequestRejected, req.ID)
}
