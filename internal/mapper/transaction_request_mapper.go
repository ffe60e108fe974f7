package mapper

import (
	"photostudio-be/internal/entity"
	"photostudio-be/internal/model"
)

type TransactionRequestMapper struct {
	transactions *TransactionMapper
	bookings     *BookingMapper
	users        *UserMapper
}

func NewTransactionRequestMapper() *TransactionRequestMapper {
	return &TransactionRequestMapper{
		transactions: NewTransactionMapper(),
		bookings:     NewBookingMapper(),
		users:        NewUserMapper(),
	}
}

func (m *TransactionRequestMapper) ToEntity(r *model.TransactionRequest) *entity.TransactionRequest {
	if r == nil {
		return nil
	}
	return &entity.TransactionRequest{
		ID:              r.ID,
		Transaction:     entity.Expanded(r.TransactionID, m.transactions.ToEntity(r.Transaction)),
		Booking:         entity.Expanded(r.BookingID, m.bookings.ToEntity(r.Booking)),
		Customer:        entity.Expanded(r.CustomerID, m.bookings.CustomerToEntity(r.Customer)),
		RequestType:     entity.RequestType(r.RequestType),
		Status:          entity.RequestStatus(r.Status),
		Reason:          r.Reason,
		RequestedAmount: r.RequestedAmount,
		RejectionReason: r.RejectionReason,
		AdminNotes:      r.AdminNotes,
		ReviewedBy:      entity.OptionalRef(r.ReviewedBy, m.users.ToEntity(r.Reviewer)),
		ReviewedAt:      r.ReviewedAt,
		IsActive:        r.IsActive,
		CreatedBy:       r.CreatedBy,
		UpdatedBy:       r.UpdatedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (m *TransactionRequestMapper) ToModel(r *entity.TransactionRequest) *model.TransactionRequest {
	if r == nil {
		return nil
	}
	return &model.TransactionRequest{
		ID:              r.ID,
		TransactionID:   r.Transaction.ID,
		BookingID:       r.Booking.ID,
		CustomerID:      r.Customer.ID,
		RequestType:     string(r.RequestType),
		Status:          string(r.Status),
		Reason:          r.Reason,
		RequestedAmount: r.RequestedAmount,
		RejectionReason: r.RejectionReason,
		AdminNotes:      r.AdminNotes,
		ReviewedBy:      r.ReviewedBy.IDPtr(),
		ReviewedAt:      r.ReviewedAt,
		IsActive:        r.IsActive,
		CreatedBy:       r.CreatedBy,
		UpdatedBy:       r.UpdatedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
