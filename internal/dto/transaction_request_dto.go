package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTransactionRequestRequest struct {
	TransactionId   uuid.UUID `json:"transaction_id" validate:"required"`
	Reason          string    `json:"reason" validate:"required"`
	RequestedAmount *float64  `json:"requested_amount,omitempty" validate:"omitempty,gt=0"`
}

type TransactionRequestFilter struct {
	Status      string `query:"status" validate:"omitempty,oneof=Pending Approved Rejected"`
	RequestType string `query:"request_type" validate:"omitempty,oneof=Refund"`
	CustomerId  *uuid.UUID
}

type ApproveRefundRequest struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}

type RejectRefundRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required"`
	AdminNotes      string `json:"admin_notes,omitempty"`
}

// TransactionRequestResponse serves both the queue and the detail view; the
// detail view fills the booking detail blocks.
type TransactionRequestResponse struct {
	Id              uuid.UUID            `json:"id"`
	RequestType     string               `json:"request_type"`
	Status          string               `json:"status"`
	Reason          string               `json:"reason,omitempty"`
	RequestedAmount *float64             `json:"requested_amount,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	AdminNotes      string               `json:"admin_notes,omitempty"`
	TransactionId   uuid.UUID            `json:"transaction_id"`
	Transaction     *RequestTransaction  `json:"transaction,omitempty"`
	BookingId       uuid.UUID            `json:"booking_id"`
	Booking         *BookingDetail       `json:"booking,omitempty"`
	CustomerId      uuid.UUID            `json:"customer_id"`
	Customer        *ContactSummary      `json:"customer,omitempty"`
	ReviewedById    *uuid.UUID           `json:"reviewed_by_id,omitempty"`
	ReviewedBy      *ContactSummary      `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time           `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type RequestTransaction struct {
	TransactionSummary
	Booking *BookingDetail `json:"booking,omitempty"`
}
