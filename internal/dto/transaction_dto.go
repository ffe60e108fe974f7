package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Ledger requests ---

type CreateTransactionRequest struct {
	BookingId          uuid.UUID `json:"booking_id" validate:"required"`
	Amount             float64   `json:"amount" validate:"gt=0"`
	TransactionType    string    `json:"transaction_type" validate:"required,oneof=Payment Refund"`
	PaymentMethod      string    `json:"payment_method" validate:"required"`
	Status             string    `json:"status,omitempty" validate:"omitempty,oneof=Pending Completed Failed"`
	PaymentProofImages []string  `json:"payment_proof_images,omitempty"`
	ExternalReference  *string   `json:"external_reference,omitempty"`
	Notes              string    `json:"notes,omitempty"`
}

type RejectTransactionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type CreateRefundRequest struct {
	RefundAmount float64 `json:"refund_amount" validate:"gt=0"`
	RefundReason string  `json:"refund_reason" validate:"required"`
	Notes        string  `json:"notes,omitempty"`
}

// UpdateTransactionRequest carries the only fields a ledger row may change
// outside a status transition. Unknown body fields are dropped by decoding.
type UpdateTransactionRequest struct {
	Notes              *string   `json:"notes,omitempty"`
	ExternalReference  *string   `json:"external_reference,omitempty"`
	PaymentProofImages *[]string `json:"payment_proof_images,omitempty"`
}

type TransactionFilter struct {
	Status          string `query:"status" validate:"omitempty,oneof=Pending Completed Failed"`
	TransactionType string `query:"transaction_type" validate:"omitempty,oneof=Payment Refund"`
	BookingId       *uuid.UUID
	CustomerId      *uuid.UUID
	Page            int `query:"page" validate:"omitempty,min=1"`
	Limit           int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// --- Ledger responses ---

type TransactionResponse struct {
	Id                    uuid.UUID            `json:"id"`
	Reference             string               `json:"reference"`
	BookingId             uuid.UUID            `json:"booking_id"`
	Booking               *BookingDetail       `json:"booking,omitempty"`
	CustomerId            uuid.UUID            `json:"customer_id"`
	Customer              *ContactSummary      `json:"customer,omitempty"`
	Amount                float64              `json:"amount"`
	TransactionType       string               `json:"transaction_type"`
	PaymentMethod         string               `json:"payment_method"`
	Status                string               `json:"status"`
	PaymentProofImages    []string             `json:"payment_proof_images"`
	ExternalReference     *string              `json:"external_reference,omitempty"`
	TransactionDate       time.Time            `json:"transaction_date"`
	ProcessedAt           *time.Time           `json:"processed_at,omitempty"`
	FailedAt              *time.Time           `json:"failed_at,omitempty"`
	RefundedAt            *time.Time           `json:"refunded_at,omitempty"`
	Notes                 string               `json:"notes,omitempty"`
	FailureReason         string               `json:"failure_reason,omitempty"`
	RefundReason          string               `json:"refund_reason,omitempty"`
	OriginalTransactionId *uuid.UUID           `json:"original_transaction_id,omitempty"`
	OriginalTransaction   *TransactionSummary  `json:"original_transaction,omitempty"`
	RefundTransactionId   *uuid.UUID           `json:"refund_transaction_id,omitempty"`
	RefundTransaction     *TransactionSummary  `json:"refund_transaction,omitempty"`
	IsActive              bool                 `json:"is_active"`
	Version               int                  `json:"version"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

type TransactionListResponse struct {
	Items []*TransactionResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

type TransactionSummary struct {
	Id            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
}

type ContactSummary struct {
	Id     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Mobile string    `json:"mobile"`
}

type BookingSummary struct {
	Id          uuid.UUID `json:"id"`
	Reference   string    `json:"reference"`
	BookingDate time.Time `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	Status      string    `json:"status"`
}

type BookingDetail struct {
	BookingSummary
	TotalAmount  float64         `json:"total_amount"`
	Customer     *ContactSummary `json:"customer,omitempty"`
	Photographer *ContactSummary `json:"photographer,omitempty"`
	Package      *PackageInfo    `json:"package,omitempty"`
	Service      *ServiceInfo    `json:"service,omitempty"`
	Promo        *PromoInfo      `json:"promo,omitempty"`
}

type PackageInfo struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

type ServiceInfo struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PromoInfo struct {
	Id              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent float64   `json:"discount_percent"`
}

// --- Booking summary ---

type BookingFinancialSummary struct {
	BookingId       uuid.UUID              `json:"booking_id"`
	AllTransactions []*TransactionResponse `json:"all_transactions"`
	Completed       []*TransactionResponse `json:"completed_transactions"`
	Pending         []*TransactionResponse `json:"pending_transactions"`
	Failed          []*TransactionResponse `json:"failed_transactions"`
	TotalPaid       float64                `json:"total_paid"`
	TotalRefunded   float64                `json:"total_refunded"`
	NetAmount       float64                `json:"net_amount"`
}
