package mapper

import (
	"photostudio-be/internal/entity"
	"photostudio-be/internal/model"
)

type TransactionMapper struct {
	bookings *BookingMapper
}

func NewTransactionMapper() *TransactionMapper {
	return &TransactionMapper{bookings: NewBookingMapper()}
}

func (m *TransactionMapper) ToEntity(t *model.Transaction) *entity.Transaction {
	if t == nil {
		return nil
	}
	return &entity.Transaction{
		ID:                  t.ID,
		Reference:           t.Reference,
		Booking:             entity.Expanded(t.BookingID, m.bookings.ToEntity(t.Booking)),
		Customer:            entity.Expanded(t.CustomerID, m.bookings.CustomerToEntity(t.Customer)),
		Amount:              t.Amount,
		TransactionType:     entity.TransactionType(t.TransactionType),
		PaymentMethod:       t.PaymentMethod,
		Status:              entity.TransactionStatus(t.Status),
		PaymentProofImages:  []string(t.PaymentProofImages),
		ExternalReference:   t.ExternalReference,
		TransactionDate:     t.TransactionDate,
		ProcessedAt:         t.ProcessedAt,
		FailedAt:            t.FailedAt,
		RefundedAt:          t.RefundedAt,
		Notes:               t.Notes,
		FailureReason:       t.FailureReason,
		RefundReason:        t.RefundReason,
		OriginalTransaction: entity.OptionalRef(t.OriginalTransactionID, m.ToEntity(t.OriginalTransaction)),
		RefundTransaction:   entity.OptionalRef(t.RefundTransactionID, m.ToEntity(t.RefundTransaction)),
		IsActive:            t.IsActive,
		CreatedBy:           t.CreatedBy,
		UpdatedBy:           t.UpdatedBy,
		DeletedBy:           t.DeletedBy,
		DeletedAt:           t.DeletedAt,
		Version:             t.Version,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// ToModel drops relations; only foreign keys are written back.
func (m *TransactionMapper) ToModel(t *entity.Transaction) *model.Transaction {
	if t == nil {
		return nil
	}
	return &model.Transaction{
		ID:                    t.ID,
		Reference:             t.Reference,
		BookingID:             t.Booking.ID,
		CustomerID:            t.Customer.ID,
		Amount:                t.Amount,
		TransactionType:       string(t.TransactionType),
		PaymentMethod:         t.PaymentMethod,
		Status:                string(t.Status),
		PaymentProofImages:    t.PaymentProofImages,
		ExternalReference:     t.ExternalReference,
		TransactionDate:       t.TransactionDate,
		ProcessedAt:           t.ProcessedAt,
		FailedAt:              t.FailedAt,
		RefundedAt:            t.RefundedAt,
		Notes:                 t.Notes,
		FailureReason:         t.FailureReason,
		RefundReason:          t.RefundReason,
		OriginalTransactionID: t.OriginalTransaction.IDPtr(),
		RefundTransactionID:   t.RefundTransaction.IDPtr(),
		IsActive:              t.IsActive,
		CreatedBy:             t.CreatedBy,
		UpdatedBy:             t.UpdatedBy,
		DeletedBy:             t.DeletedBy,
		DeletedAt:             t.DeletedAt,
		Version:               t.Version,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}
