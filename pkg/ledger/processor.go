package ledger

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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// Processor owns every write to the transaction ledger. Status changes go
// through conditional updates so a row leaves Pending at most once.
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

// Money converts an API amount to a two-decimal ledger amount.
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// Create inserts a Payment or Refund row for an existing booking.
func (p *Processor) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateTransactionRequest, actorID uuid.UUID) (*entity.Transaction, error) {
	amount := Money(req.Amount)
	if !amount.IsPositive() {
		return nil, apperror.ValidationError{Field: "amount", Msg: "must be greater than 0"}
	}
	txnType := entity.TransactionType(req.TransactionType)
	if !txnType.IsValid() {
		return nil, apperror.ValidationError{Field: "transaction_type", Msg: "must be Payment or Refund"}
	}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		return nil, apperror.ValidationError{Field: "payment_method", Msg: "must not be blank"}
	}
	status := entity.TransactionStatusPending
	if req.Status != "" {
		status = entity.TransactionStatus(req.Status)
		if !status.IsValid() {
			return nil, apperror.ValidationError{Field: "status", Msg: "must be one of Pending, Completed, Failed"}
		}
	}

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: req.BookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFoundError{Resource: "Booking"}
	}

	now := p.clock()
	id := uuid.New()
	txn := &entity.Transaction{
		ID:                 id,
		Reference:          entity.NewTransactionReference(id),
		Booking:            entity.RefTo[entity.Booking](booking.ID),
		Customer:           entity.RefTo[entity.Customer](booking.Customer.ID),
		Amount:             amount,
		TransactionType:    txnType,
		PaymentMethod:      method,
		Status:             status,
		PaymentProofImages: req.PaymentProofImages,
		ExternalReference:  req.ExternalReference,
		TransactionDate:    now,
		Notes:              req.Notes,
		IsActive:           true,
		CreatedBy:          &actorID,
		UpdatedBy:          &actorID,
	}
	switch status {
	case entity.TransactionStatusCompleted:
		txn.ProcessedAt = &now
	case entity.TransactionStatusFailed:
		txn.FailedAt = &now
	}
	if txn.PaymentProofImages == nil {
		txn.PaymentProofImages = []string{}
	}

	if err := uow.TransactionRepository().Create(ctx, txn); err != nil {
		return nil, err
	}

	p.logger.Info("LEDGER", "Transaction created", map[string]interface{}{
		"transactionId": txn.ID.String(),
		"bookingId":     booking.ID.String(),
		"type":          string(txnType),
		"status":        string(status),
		"amount":        amount.StringFixed(2),
		"actorId":       actorID.String(),
	})
	metrics.LedgerTransitions.WithLabelValues("create", string(status)).Inc()
	p.publisher.PublishTransactionCreated(ctx, txn)

	return p.reload(ctx, uow, txn)
}

// Get returns an active transaction with its booking context expanded.
func (p *Processor) Get(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := uow.TransactionRepository().FindOneWithDetails(ctx, specification.ByID{ID: id}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NotFoundError{Resource: "Transaction"}
	}
	return txn, nil
}

// ListResult is one page of the ledger.
type ListResult struct {
	Items []*entity.Transaction
	Total int64
	Page  int
	Limit int
}

func (p *Processor) List(ctx context.Context, uow unitofwork.UnitOfWork, filter dto.TransactionFilter) (*ListResult, error) {
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	specs := []specification.Specification{specification.ActiveOnly{}}
	if filter.Status != "" {
		specs = append(specs, specification.Filter("status", filter.Status))
	}
	if filter.TransactionType != "" {
		specs = append(specs, specification.Filter("transaction_type", filter.TransactionType))
	}
	if filter.BookingId != nil {
		specs = append(specs, specification.ByBookingID{BookingID: *filter.BookingId})
	}
	if filter.CustomerId != nil {
		specs = append(specs, specification.ByCustomerID{CustomerID: *filter.CustomerId})
	}

	total, err := uow.TransactionRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	items, err := uow.TransactionRepository().FindAllWithDetails(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return &ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Approve moves a Pending transaction to Completed.
func (p *Processor) Approve(ctx context.Context, uow unitofwork.UnitOfWork, id, actorID uuid.UUID) (*entity.Transaction, error) {
	txn, err := p.findActive(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	now := p.clock()
	if err := p.transition(ctx, uow, txn, entity.TransactionStatusCompleted, actorID, func() {
		txn.ProcessedAt = &now
	}); err != nil {
		return nil, err
	}

	p.logger.Info("LEDGER", "Transaction approved", map[string]interface{}{
		"transactionId": txn.ID.String(),
		"actorId":       actorID.String(),
	})
	metrics.LedgerTransitions.WithLabelValues("approve", string(txn.Status)).Inc()
	p.publisher.PublishTransactionApproved(ctx, txn)

	return p.reload(ctx, uow, txn)
}

// Reject moves a Pending transaction to Failed and records why.
func (p *Processor) Reject(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, reason string, actorID uuid.UUID) (*entity.Transaction, error) {
	if !entity.ReasonLongEnough(reason) {
		return nil, apperror.ValidationError{
			Field: "reason",
			Msg:   fmt.Sprintf("must be at least %d characters", entity.MinReasonLength),
		}
	}

	txn, err := p.findActive(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	now := p.clock()
	if err := p.transition(ctx, uow, txn, entity.TransactionStatusFailed, actorID, func() {
		txn.FailedAt = &now
		txn.FailureReason = strings.TrimSpace(reason)
	}); err != nil {
		return nil, err
	}

	p.logger.Info("LEDGER", "Transaction rejected", map[string]interface{}{
		"transactionId": txn.ID.String(),
		"reason":        txn.FailureReason,
		"actorId":       actorID.String(),
	})
	metrics.LedgerTransitions.WithLabelValues("reject", string(txn.Status)).Inc()
	p.publisher.PublishTransactionRejected(ctx, txn)

	return p.reload(ctx, uow, txn)
}

// Refund issues a Refund transaction against an active payment and links the
// two rows in both directions. Both writes share one database transaction.
func (p *Processor) Refund(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.CreateRefundRequest, actorID uuid.UUID) (*entity.Transaction, error) {
	amount := Money(req.RefundAmount)
	if !amount.IsPositive() {
		return nil, apperror.ValidationError{Field: "refund_amount", Msg: "must be greater than 0"}
	}
	reason := strings.TrimSpace(req.RefundReason)
	if reason == "" {
		return nil, apperror.ValidationError{Field: "refund_reason", Msg: "must not be blank"}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	original, err := p.findActive(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if original.TransactionType != entity.TransactionTypePayment {
		return nil, apperror.ValidationError{Msg: "Only payment transactions can be refunded"}
	}
	if original.IsRefunded() {
		return nil, apperror.ConflictError{Resource: "transaction", Msg: "transaction has already been refunded"}
	}
	if amount.GreaterThan(original.Amount) {
		return nil, apperror.ValidationError{
			Field: "refund_amount",
			Msg:   fmt.Sprintf("must not exceed the original amount of %s", original.Amount.StringFixed(2)),
		}
	}

	now := p.clock()
	refundID := uuid.New()
	refund := &entity.Transaction{
		ID:                  refundID,
		Reference:           entity.NewTransactionReference(refundID),
		Booking:             entity.RefTo[entity.Booking](original.Booking.ID),
		Customer:            entity.RefTo[entity.Customer](original.Customer.ID),
		Amount:              amount,
		TransactionType:     entity.TransactionTypeRefund,
		PaymentMethod:       original.PaymentMethod,
		Status:              entity.TransactionStatusPending,
		PaymentProofImages:  []string{},
		TransactionDate:     now,
		Notes:               req.Notes,
		RefundReason:        reason,
		OriginalTransaction: entity.RefTo[entity.Transaction](original.ID),
		IsActive:            true,
		CreatedBy:           &actorID,
		UpdatedBy:           &actorID,
	}
	if err := uow.TransactionRepository().Create(ctx, refund); err != nil {
		return nil, err
	}

	linked, err := uow.TransactionRepository().LinkRefund(ctx, original.ID, refund.ID, now, actorID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, apperror.ConflictError{Resource: "transaction", Msg: "transaction has already been refunded"}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	original.RefundTransaction = entity.RefTo[entity.Transaction](refund.ID)
	original.RefundedAt = &now

	p.logger.Info("LEDGER", "Refund issued", map[string]interface{}{
		"originalId": original.ID.String(),
		"refundId":   refund.ID.String(),
		"amount":     amount.StringFixed(2),
		"actorId":    actorID.String(),
	})
	metrics.LedgerTransitions.WithLabelValues("refund", string(refund.Status)).Inc()
	p.publisher.PublishRefundIssued(ctx, original, refund)

	return p.reload(ctx, uow, refund)
}

// Update applies the descriptive allow-list: notes, external_reference and
// payment_proof_images. Status and money never change here.
func (p *Processor) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdateTransactionRequest, actorID uuid.UUID) (*entity.Transaction, error) {
	txn, err := p.findActive(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if req.ExternalReference != nil {
		txn.ExternalReference = req.ExternalReference
	}
	if req.PaymentProofImages != nil {
		txn.PaymentProofImages = *req.PaymentProofImages
	}
	txn.UpdatedBy = &actorID

	if err := uow.TransactionRepository().UpdateDetails(ctx, txn); err != nil {
		return nil, err
	}

	p.logger.Info("LEDGER", "Transaction details updated", map[string]interface{}{
		"transactionId": txn.ID.String(),
		"actorId":       actorID.String(),
	})

	return p.reload(ctx, uow, txn)
}

// SoftDelete hides a transaction from every ledger view. History stays in
// the table and there is no undelete.
func (p *Processor) SoftDelete(ctx context.Context, uow unitofwork.UnitOfWork, id, actorID uuid.UUID) error {
	txn, err := p.findActive(ctx, uow, id)
	if err != nil {
		return err
	}

	deleted, err := uow.TransactionRepository().SoftDelete(ctx, txn.ID, actorID, p.clock())
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFoundError{Resource: "Transaction"}
	}

	p.logger.Info("LEDGER", "Transaction deleted", map[string]interface{}{
		"transactionId": txn.ID.String(),
		"actorId":       actorID.String(),
	})
	metrics.LedgerTransitions.WithLabelValues("delete", string(txn.Status)).Inc()
	p.publisher.PublishTransactionDeleted(ctx, txn)
	return nil
}

func (p *Processor) findActive(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: id}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NotFoundError{Resource: "Transaction"}
	}
	return txn, nil
}

// transition applies mutate and writes the new status only if the stored row
// is still Pending. A lost race surfaces as the same conflict as a stale read.
func (p *Processor) transition(ctx context.Context, uow unitofwork.UnitOfWork, txn *entity.Transaction, next entity.TransactionStatus, actorID uuid.UUID, mutate func()) error {
	from := txn.Status
	if !from.CanTransitionTo(next) {
		return apperror.ConflictError{
			Resource: "transaction",
			Msg:      fmt.Sprintf("cannot move a %s transaction to %s", from, next),
		}
	}

	txn.Status = next
	txn.UpdatedBy = &actorID
	mutate()

	changed, err := uow.TransactionRepository().TransitionStatus(ctx, txn, from)
	if err != nil {
		return err
	}
	if !changed {
		return apperror.ConflictError{
			Resource: "transaction",
			Msg:      fmt.Sprintf("transaction is no longer %s", from),
		}
	}
	return nil
}

func (p *Processor) reload(ctx context.Context, uow unitofwork.UnitOfWork, txn *entity.Transaction) (*entity.Transaction, error) {
	full, err := uow.TransactionRepository().FindOneWithDetails(ctx, specification.ByID{ID: txn.ID})
	if err != nil {
		return nil, err
	}
	if full == nil {
		return txn, nil
	}
	return full, nil
}
