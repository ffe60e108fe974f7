package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RequestType string

const (
	RequestTypeRefund RequestType = "Refund"
)

func (t RequestType) IsValid() bool {
	return t == RequestTypeRefund
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// TransactionRequest is a review ticket asking an administrator to refund a
// completed transaction. It is closed exactly once.
type TransactionRequest struct {
	ID              uuid.UUID
	Transaction     Ref[Transaction]
	Booking         Ref[Booking]
	Customer        Ref[Customer]
	RequestType     RequestType
	Status          RequestStatus
	Reason          string
	RequestedAmount *decimal.Decimal
	RejectionReason string
	AdminNotes      string
	ReviewedBy      Ref[User]
	ReviewedAt      *time.Time
	IsActive        bool
	CreatedBy       *uuid.UUID
	UpdatedBy       *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
