package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/entity"
	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/testutil/eventstub"
	"photostudio-be/internal/testutil/memuow"
	pkgEvents "photostudio-be/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC)

type ledgerEnv struct {
	ctx       context.Context
	store     *memuow.Store
	fx        memuow.Fixture
	events    *eventstub.Publisher
	processor *Processor
	actor     uuid.UUID
}

func newLedgerEnv(t *testing.T) *ledgerEnv {
	t.Helper()
	store := memuow.NewStore()
	fx := memuow.Seed(store)
	events := &eventstub.Publisher{}
	p := NewProcessor(logger.NewNopLogger(), events)
	p.clock = func() time.Time { return fixedNow }

	return &ledgerEnv{
		ctx:       context.Background(),
		store:     store,
		fx:        fx,
		events:    events,
		processor: p,
		actor:     fx.Admin.ID,
	}
}

func (e *ledgerEnv) uow() *memuow.UnitOfWork {
	return e.store.NewUnitOfWork(e.ctx).(*memuow.UnitOfWork)
}

func TestCreateDefaultsToPending(t *testing.T) {
	env := newLedgerEnv(t)

	txn, err := env.processor.Create(env.ctx, env.uow(), dto.CreateTransactionRequest{
		BookingId:          env.fx.Booking.ID,
		Amount:             2500.456,
		TransactionType:    "Payment",
		PaymentMethod:      " GCash ",
		PaymentProofImages: []string{"https://cdn.example.com/proof/1.jpg"},
	}, env.actor)
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionStatusPending, txn.Status)
	assert.Equal(t, "GCash", txn.PaymentMethod)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("2500.46")))
	assert.Equal(t, env.fx.Customer.ID, txn.Customer.ID)
	assert.Equal(t, entity.NewTransactionReference(txn.ID), txn.Reference)
	assert.Equal(t, fixedNow, txn.TransactionDate)
	assert.Nil(t, txn.ProcessedAt)
	assert.Equal(t, &env.actor, txn.CreatedBy)

	booking, ok := txn.Booking.Get()
	require.True(t, ok, "booking should be expanded")
	_, ok = booking.Photographer.Get()
	assert.True(t, ok)

	assert.Equal(t, []string{pkgEvents.TransactionCreated}, env.events.Types())
}

func TestCreateWithExplicitStatus(t *testing.T) {
	env := newLedgerEnv(t)

	completed, err := env.processor.Create(env.ctx, env.uow(), dto.CreateTransactionRequest{
		BookingId: env.fx.Booking.ID, Amount: 100, TransactionType: "Payment", PaymentMethod: "Cash", Status: "Completed",
	}, env.actor)
	require.NoError(t, err)
	require.NotNil(t, completed.ProcessedAt)
	assert.Equal(t, fixedNow, *completed.ProcessedAt)

	failed, err := env.processor.Create(env.ctx, env.uow(), dto.CreateTransactionRequest{
		BookingId: env.fx.Booking.ID, Amount: 100, TransactionType: "Payment", PaymentMethod: "Cash", Status: "Failed",
	}, env.actor)
	require.NoError(t, err)
	assert.NotNil(t, failed.FailedAt)
}

func TestCreateValidation(t *testing.T) {
	env := newLedgerEnv(t)
	valid := dto.CreateTransactionRequest{
		BookingId: env.fx.Booking.ID, Amount: 100, TransactionType: "Payment", PaymentMethod: "Cash",
	}

	tests := []struct {
		name     string
		mutate   func(r *dto.CreateTransactionRequest)
		notFound bool
	}{
		{name: "zero amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = 0 }},
		{name: "negative amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = -10 }},
		{name: "amount rounds to zero", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = 0.001 }},
		{name: "unknown type", mutate: func(r *dto.CreateTransactionRequest) { r.TransactionType = "Gift" }},
		{name: "blank method", mutate: func(r *dto.CreateTransactionRequest) { r.PaymentMethod = "   " }},
		{name: "unknown status", mutate: func(r *dto.CreateTransactionRequest) { r.Status = "Refunded" }},
		{name: "missing booking", mutate: func(r *dto.CreateTransactionRequest) { r.BookingId = uuid.New() }, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			_, err := env.processor.Create(env.ctx, env.uow(), req, env.actor)
			require.Error(t, err)
			if tt.notFound {
				assert.True(t, apperror.IsNotFound(err))
			} else {
				assert.True(t, apperror.IsValidation(err))
			}
		})
	}
	assert.Zero(t, env.store.TransactionCount())
}

func TestApproveTwiceConflicts(t *testing.T) {
	env := newLedgerEnv(t)
	txn := env.fx.Payment(env.store, 5000, entity.TransactionStatusPending)

	approved, err := env.processor.Approve(env.ctx, env.uow(), txn.ID, env.actor)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, approved.Status)
	require.NotNil(t, approved.ProcessedAt)
	assert.Equal(t, fixedNow, *approved.ProcessedAt)
	assert.Equal(t, &env.actor, approved.UpdatedBy)

	_, err = env.processor.Approve(env.ctx, env.uow(), txn.ID, env.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	stored, _ := env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusCompleted, stored.Status)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, []string{pkgEvents.TransactionApproved}, env.events.Types())
}

func TestTerminalStatesRejectEveryTransition(t *testing.T) {
	for _, status := range []entity.TransactionStatus{entity.TransactionStatusCompleted, entity.TransactionStatusFailed} {
		t.Run(string(status), func(t *testing.T) {
			env := newLedgerEnv(t)
			txn := env.fx.Payment(env.store, 100, status)

			_, err := env.processor.Approve(env.ctx, env.uow(), txn.ID, env.actor)
			assert.True(t, apperror.IsConflict(err))

			_, err = env.processor.Reject(env.ctx, env.uow(), txn.ID, "customer cancelled", env.actor)
			assert.True(t, apperror.IsConflict(err))

			stored, _ := env.store.Transaction(txn.ID)
			assert.Equal(t, status, stored.Status)
			assert.Zero(t, stored.Version)
		})
	}
}

func TestRejectReasonBoundary(t *testing.T) {
	env := newLedgerEnv(t)
	txn := env.fx.Payment(env.store, 100, entity.TransactionStatusPending)

	_, err := env.processor.Reject(env.ctx, env.uow(), txn.ID, "abcd", env.actor)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	stored, _ := env.store.Transaction(txn.ID)
	assert.Equal(t, entity.TransactionStatusPending, stored.Status)

	rejected, err := env.processor.Reject(env.ctx, env.uow(), txn.ID, " abcde ", env.actor)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusFailed, rejected.Status)
	assert.Equal(t, "abcde", rejected.FailureReason)
	require.NotNil(t, rejected.FailedAt)
	assert.Nil(t, rejected.ProcessedAt)
}

func TestTransitionsIgnoreDeletedAndMissing(t *testing.T) {
	env := newLedgerEnv(t)
	txn := env.fx.Payment(env.store, 100, entity.TransactionStatusPending)
	require.NoError(t, env.processor.SoftDelete(env.ctx, env.uow(), txn.ID, env.actor))

	_, err := env.processor.Approve(env.ctx, env.uow(), txn.ID, env.actor)
	assert.True(t, apperror.IsNotFound(err))

	_, err = env.processor.Approve(env.ctx, env.uow(), uuid.New(), env.actor)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRefundLinksBothDirections(t *testing.T) {
	env := newLedgerEnv(t)
	original := env.fx.Payment(env.store, 5000, entity.TransactionStatusCompleted)

	refund, err := env.processor.Refund(env.ctx, env.uow(), original.ID, dto.CreateRefundRequest{
		RefundAmount: 2000,
		RefundReason: "Photographer unavailable",
		Notes:        "partial",
	}, env.actor)
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeRefund, refund.TransactionType)
	assert.Equal(t, entity.TransactionStatusPending, refund.Status)
	assert.True(t, refund.Amount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, original.Booking.ID, refund.Booking.ID)
	assert.Equal(t, original.Customer.ID, refund.Customer.ID)
	assert.Equal(t, original.PaymentMethod, refund.PaymentMethod)
	assert.Equal(t, "Photographer unavailable", refund.RefundReason)
	assert.Equal(t, original.ID, refund.OriginalTransaction.ID)

	linked, ok := refund.OriginalTransaction.Get()
	require.True(t, ok)
	assert.Equal(t, original.Reference, linked.Reference)

	stored, _ := env.store.Transaction(original.ID)
	assert.Equal(t, refund.ID, stored.RefundTransaction.ID)
	require.NotNil(t, stored.RefundedAt)
	assert.Equal(t, fixedNow, *stored.RefundedAt)
	assert.Equal(t, entity.TransactionStatusCompleted, stored.Status)

	assert.Equal(t, []string{pkgEvents.RefundIssued}, env.events.Types())
}

func TestRefundRules(t *testing.T) {
	env := newLedgerEnv(t)
	original := env.fx.Payment(env.store, 1000, entity.TransactionStatusCompleted)
	req := dto.CreateRefundRequest{RefundAmount: 500, RefundReason: "Duplicate charge"}

	t.Run("over the original amount", func(t *testing.T) {
		_, err := env.processor.Refund(env.ctx, env.uow(), original.ID, dto.CreateRefundRequest{
			RefundAmount: 1000.01, RefundReason: "Too much",
		}, env.actor)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("blank reason", func(t *testing.T) {
		_, err := env.processor.Refund(env.ctx, env.uow(), original.ID, dto.CreateRefundRequest{RefundAmount: 10, RefundReason: " "}, env.actor)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("missing original", func(t *testing.T) {
		_, err := env.processor.Refund(env.ctx, env.uow(), uuid.New(), req, env.actor)
		assert.True(t, apperror.IsNotFound(err))
	})

	refund, err := env.processor.Refund(env.ctx, env.uow(), original.ID, req, env.actor)
	require.NoError(t, err)
	count := env.store.TransactionCount()

	t.Run("second refund of the same payment", func(t *testing.T) {
		_, err := env.processor.Refund(env.ctx, env.uow(), original.ID, req, env.actor)
		assert.True(t, apperror.IsConflict(err))
		assert.Equal(t, count, env.store.TransactionCount())
	})

	t.Run("refund of a refund", func(t *testing.T) {
		_, err := env.processor.Refund(env.ctx, env.uow(), refund.ID, dto.CreateRefundRequest{RefundAmount: 1, RefundReason: "nope"}, env.actor)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestRefundRollsBackWhenLinkFails(t *testing.T) {
	env := newLedgerEnv(t)
	original := env.fx.Payment(env.store, 1000, entity.TransactionStatusCompleted)
	env.store.Fail["TransactionRepository.LinkRefund"] = errors.New("connection reset")

	_, err := env.processor.Refund(env.ctx, env.uow(), original.ID, dto.CreateRefundRequest{
		RefundAmount: 100, RefundReason: "Weather",
	}, env.actor)
	require.Error(t, err)

	assert.Equal(t, 1, env.store.TransactionCount())
	stored, _ := env.store.Transaction(original.ID)
	assert.True(t, stored.RefundTransaction.IsZero())
	assert.Empty(t, env.events.Types())
}

func TestUpdateAppliesAllowListOnly(t *testing.T) {
	env := newLedgerEnv(t)
	txn := env.fx.Payment(env.store, 750, entity.TransactionStatusPending)

	notes := "paid at front desk"
	ext := "BCA-778812"
	images := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}

	updated, err := env.processor.Update(env.ctx, env.uow(), txn.ID, dto.UpdateTransactionRequest{
		Notes:              &notes,
		ExternalReference:  &ext,
		PaymentProofImages: &images,
	}, env.actor)
	require.NoError(t, err)

	assert.Equal(t, notes, updated.Notes)
	require.NotNil(t, updated.ExternalReference)
	assert.Equal(t, ext, *updated.ExternalReference)
	assert.Equal(t, images, updated.PaymentProofImages)
	assert.Equal(t, entity.TransactionStatusPending, updated.Status)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(750)))

	// Fields left nil are untouched.
	again, err := env.processor.Update(env.ctx, env.uow(), txn.ID, dto.UpdateTransactionRequest{}, env.actor)
	require.NoError(t, err)
	assert.Equal(t, notes, again.Notes)
	assert.Equal(t, images, again.PaymentProofImages)
}

func TestSoftDeleteHidesTransaction(t *testing.T) {
	env := newLedgerEnv(t)
	txn := env.fx.Payment(env.store, 300, entity.TransactionStatusPending)

	require.NoError(t, env.processor.SoftDelete(env.ctx, env.uow(), txn.ID, env.actor))

	stored, ok := env.store.Transaction(txn.ID)
	require.True(t, ok, "row must survive")
	assert.False(t, stored.IsActive)
	assert.Equal(t, &env.actor, stored.DeletedBy)
	require.NotNil(t, stored.DeletedAt)

	_, err := env.processor.Get(env.ctx, env.uow(), txn.ID)
	assert.True(t, apperror.IsNotFound(err))

	err = env.processor.SoftDelete(env.ctx, env.uow(), txn.ID, env.actor)
	assert.True(t, apperror.IsNotFound(err))
}

func TestListFiltersAndPages(t *testing.T) {
	env := newLedgerEnv(t)
	for i := 0; i < 3; i++ {
		env.fx.Payment(env.store, 100, entity.TransactionStatusPending)
	}
	completed := env.fx.Payment(env.store, 200, entity.TransactionStatusCompleted)
	deleted := env.fx.Payment(env.store, 300, entity.TransactionStatusPending)
	require.NoError(t, env.processor.SoftDelete(env.ctx, env.uow(), deleted.ID, env.actor))

	res, err := env.processor.List(env.ctx, env.uow(), dto.TransactionFilter{Status: "Pending", Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.Page)

	res, err = env.processor.List(env.ctx, env.uow(), dto.TransactionFilter{Status: "Pending", Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	bookingID := env.fx.Booking.ID
	res, err = env.processor.List(env.ctx, env.uow(), dto.TransactionFilter{BookingId: &bookingID})
	require.NoError(t, err)
	assert.EqualValues(t, 4, res.Total)
	assert.Equal(t, completed.ID, res.Items[0].ID, "newest first")
	assert.Equal(t, defaultLimit, res.Limit)
}
