package refund

import (
	"context"
	"fmt"
	"strings"
	"time"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/entity"
	"photostudio-be/internal/metrics"
	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/repository/specification"
	"photostudio-be/internal/repository/unitofwork"
	adminEvents "photostudio-be/pkg/admin/events"
	"photostudio-be/pkg/ledger"

	"github.com/google/uuid"
)

// ErrNotEligible is returned when a refund is approved for a transaction that
// never completed.
var ErrNotEligible = apperror.ValidationError{Msg: "Only completed transactions are eligible for refund"}

// Processor handles the refund review queue. Approval only closes the ticket;
// issuing money stays a separate ledger operation.
type Processor struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
	clock     func() time.Time
}

func NewProcessor(logger logger.ILogger, publisher adminEvents.Publisher) *Processor {
	return &Processor{
		logger:    logger,
		publisher: publisher,
		clock:     time.Now,
	}
}

// List returns active requests, newest first, with one level of expansion.
func (p *Processor) List(ctx context.Context, uow unitofwork.UnitOfWork, filter dto.TransactionRequestFilter) ([]*entity.TransactionRequest, error) {
	specs := []specification.Specification{specification.ActiveOnly{}}
	if filter.Status != "" {
		specs = append(specs, specification.Filter("status", filter.Status))
	}
	if filter.RequestType != "" {
		specs = append(specs, specification.Filter("request_type", filter.RequestType))
	}
	if filter.CustomerId != nil {
		specs = append(specs, specification.ByCustomerID{CustomerID: *filter.CustomerId})
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	return uow.TransactionRequestRepository().FindAllWithSummaries(ctx, specs...)
}

// Get returns one request with its transaction and booking fully expanded.
func (p *Processor) Get(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.TransactionRequest, error) {
	req, err := uow.TransactionRequestRepository().FindOneWithDetails(ctx, specification.ByID{ID: id}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperror.NotFoundError{Resource: "Transaction request"}
	}
	return req, nil
}

// Create opens a Pending refund ticket. One open ticket per transaction.
func (p *Processor) Create(ctx context.Context, uow unitofwork.UnitOfWork, in dto.CreateTransactionRequestRequest, actorID uuid.UUID) (*entity.TransactionRequest, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, apperror.ValidationError{Field: "reason", Msg: "must not be blank"}
	}

	txn, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: in.TransactionId}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NotFoundError{Resource: "Transaction"}
	}

	req := &entity.TransactionRequest{
		ID:          uuid.New(),
		Transaction: entity.RefTo[entity.Transaction](txn.ID),
		Booking:     entity.RefTo[entity.Booking](txn.Booking.ID),
		Customer:    entity.RefTo[entity.Customer](txn.Customer.ID),
		RequestType: entity.RequestTypeRefund,
		Status:      entity.RequestStatusPending,
		Reason:      reason,
		IsActive:    true,
		CreatedBy:   &actorID,
		UpdatedBy:   &actorID,
	}
	if in.RequestedAmount != nil {
		amount := ledger.Money(*in.RequestedAmount)
		if !amount.IsPositive() {
			return nil, apperror.ValidationError{Field: "requested_amount", Msg: "must be greater than 0"}
		}
		if amount.GreaterThan(txn.Amount) {
			return nil, apperror.ValidationError{Field: "requested_amount", Msg: "must not exceed the transaction amount"}
		}
		req.RequestedAmount = &amount
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	open, err := uow.TransactionRequestRepository().FindOne(ctx,
		specification.ByTransactionID{TransactionID: txn.ID},
		specification.Filter("status", string(entity.RequestStatusPending)),
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperror.ConflictError{Resource: "transaction request", Msg: "a pending refund request already exists for this transaction"}
	}

	if err := uow.TransactionRequestRepository().Create(ctx, req); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	p.logger.Info("REFUND", "Refund request opened", map[string]interface{}{
		"requestId":     req.ID.String(),
		"transactionId": txn.ID.String(),
		"actorId":       actorID.String(),
	})

	full, err := p.Get(ctx, uow, req.ID)
	if err != nil {
		return nil, err
	}
	p.publisher.PublishRefundRequestCreated(ctx, full)
	return full, nil
}

// ApproveRefund closes a ticket as Approved. The linked transaction must be
// Completed.
func (p *Processor) ApproveRefund(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, in dto.ApproveRefundRequest, actorID uuid.UUID) (*entity.TransactionRequest, error) {
	req, err := p.Get(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	txn, err := p.linkedTransaction(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	if txn.Status != entity.TransactionStatusCompleted {
		return nil, ErrNotEligible
	}

	if err := p.close(ctx, uow, req, entity.RequestStatusApproved, actorID, func() {
		req.AdminNotes = in.AdminNotes
	}); err != nil {
		return nil, err
	}

	p.logger.Info("REFUND", "Approved Refund Request", map[string]interface{}{
		"requestId":     req.ID.String(),
		"transactionId": txn.ID.String(),
		"adminNotes":    in.AdminNotes,
		"actorId":       actorID.String(),
	})
	metrics.RefundReviews.WithLabelValues("approved").Inc()

	full, err := p.Get(ctx, uow, req.ID)
	if err != nil {
		return nil, err
	}
	p.publisher.PublishRefundRequestApproved(ctx, full)
	return full, nil
}

// RejectRefund closes a ticket as Rejected with a reason.
func (p *Processor) RejectRefund(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, in dto.RejectRefundRequest, actorID uuid.UUID) (*entity.TransactionRequest, error) {
	if !entity.ReasonLongEnough(in.RejectionReason) {
		return nil, apperror.ValidationError{
			Field: "rejection_reason",
			Msg:   fmt.Sprintf("must be at least %d characters", entity.MinReasonLength),
		}
	}

	req, err := p.Get(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if err := p.close(ctx, uow, req, entity.RequestStatusRejected, actorID, func() {
		req.RejectionReason = strings.TrimSpace(in.RejectionReason)
		req.AdminNotes = in.AdminNotes
	}); err != nil {
		return nil, err
	}

	p.logger.Info("REFUND", "Rejected Refund Request", map[string]interface{}{
		"requestId": req.ID.String(),
		"reason":    req.RejectionReason,
		"actorId":   actorID.String(),
	})
	metrics.RefundReviews.WithLabelValues("rejected").Inc()

	full, err := p.Get(ctx, uow, req.ID)
	if err != nil {
		return nil, err
	}
	p.publisher.PublishRefundRequestRejected(ctx, full)
	return full, nil
}

func (p *Processor) linkedTransaction(ctx context.Context, uow unitofwork.UnitOfWork, req *entity.TransactionRequest) (*entity.Transaction, error) {
	if txn, ok := req.Transaction.Get(); ok {
		return txn, nil
	}
	txn, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: req.Transaction.ID})
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NotFoundError{Resource: "Transaction"}
	}
	return txn, nil
}

// close writes the review outcome only while the stored ticket is Pending.
func (p *Processor) close(ctx context.Context, uow unitofwork.UnitOfWork, req *entity.TransactionRequest, next entity.RequestStatus, actorID uuid.UUID, mutate func()) error {
	if req.Status != entity.RequestStatusPending {
		return apperror.ConflictError{
			Resource: "transaction request",
			Msg:      fmt.Sprintf("request has already been %s", strings.ToLower(string(req.Status))),
		}
	}

	now := p.clock()
	req.Status = next
	req.ReviewedBy = entity.RefTo[entity.User](actorID)
	req.ReviewedAt = &now
	req.UpdatedBy = &actorID
	mutate()

	closed, err := uow.TransactionRequestRepository().CloseReview(ctx, req, entity.RequestStatusPending)
	if err != nil {
		return err
	}
	if !closed {
		return apperror.ConflictError{Resource: "transaction request", Msg: "request is no longer pending"}
	}
	return nil
}
