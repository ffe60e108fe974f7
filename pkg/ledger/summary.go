package ledger

import (
	"context"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/repository/specification"
	"photostudio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingSummary is the financial position of one booking. The three status
// buckets partition All.
type BookingSummary struct {
	BookingID     uuid.UUID
	All           []*entity.Transaction
	Completed     []*entity.Transaction
	Pending       []*entity.Transaction
	Failed        []*entity.Transaction
	TotalPaid     decimal.Decimal
	TotalRefunded decimal.Decimal
	NetAmount     decimal.Decimal
}

// Summarize buckets txns by status and totals them. TotalPaid sums every
// Completed row; TotalRefunded sums Refund rows whatever their status.
func Summarize(bookingID uuid.UUID, txns []*entity.Transaction) *BookingSummary {
	s := &BookingSummary{
		BookingID:     bookingID,
		All:           txns,
		Completed:     []*entity.Transaction{},
		Pending:       []*entity.Transaction{},
		Failed:        []*entity.Transaction{},
		TotalPaid:     decimal.Zero,
		TotalRefunded: decimal.Zero,
	}

	for _, txn := range txns {
		switch txn.Status {
		case entity.TransactionStatusCompleted:
			s.Completed = append(s.Completed, txn)
			s.TotalPaid = s.TotalPaid.Add(txn.Amount)
		case entity.TransactionStatusPending:
			s.Pending = append(s.Pending, txn)
		case entity.TransactionStatusFailed:
			s.Failed = append(s.Failed, txn)
		}

		if txn.TransactionType == entity.TransactionTypeRefund {
			s.TotalRefunded = s.TotalRefunded.Add(txn.Amount)
		}
	}

	s.NetAmount = s.TotalPaid.Sub(s.TotalRefunded)
	return s
}

// BookingSummary loads every active transaction of a booking. A booking with
// no ledger activity at all has no summary.
func (p *Processor) BookingSummary(ctx context.Context, uow unitofwork.UnitOfWork, bookingID uuid.UUID) (*BookingSummary, error) {
	txns, err := uow.TransactionRepository().FindAllWithDetails(ctx,
		specification.ByBookingID{BookingID: bookingID},
		specification.ActiveOnly{},
		specification.OrderBy{Field: "transaction_date", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, apperror.NotFoundError{Resource: "Transactions for booking"}
	}

	return Summarize(bookingID, txns), nil
}
