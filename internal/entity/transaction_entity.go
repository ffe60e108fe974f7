package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypePayment TransactionType = "Payment"
	TransactionTypeRefund  TransactionType = "Refund"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypePayment || t == TransactionTypeRefund
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusCompleted TransactionStatus = "Completed"
	TransactionStatusFailed    TransactionStatus = "Failed"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the ledger state machine allows moving
// from s to next. Completed and Failed are terminal.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	validTransitions := map[TransactionStatus][]TransactionStatus{
		TransactionStatusPending:   {TransactionStatusCompleted, TransactionStatusFailed},
		TransactionStatusCompleted: {},
		TransactionStatusFailed:    {},
	}

	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MinReasonLength is the shortest accepted rejection or failure reason.
const MinReasonLength = 5

// ReasonLongEnough trims reason and counts characters, not bytes.
func ReasonLongEnough(reason string) bool {
	return len([]rune(strings.TrimSpace(reason))) >= MinReasonLength
}

// Transaction is one monetary movement tied to a booking.
type Transaction struct {
	ID                 uuid.UUID
	Reference          string
	Booking            Ref[Booking]
	Customer           Ref[Customer]
	Amount             decimal.Decimal
	TransactionType    TransactionType
	PaymentMethod      string
	Status             TransactionStatus
	PaymentProofImages []string
	ExternalReference  *string
	TransactionDate    time.Time
	ProcessedAt        *time.Time
	FailedAt           *time.Time
	RefundedAt         *time.Time
	Notes              string
	FailureReason      string
	RefundReason       string

	// OriginalTransaction is set on refunds only.
	OriginalTransaction Ref[Transaction]
	// RefundTransaction is set on an original once it has been refunded.
	RefundTransaction Ref[Transaction]

	IsActive  bool
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
	DeletedBy *uuid.UUID
	DeletedAt *time.Time
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTransactionReference derives the human readable code shown to staff.
func NewTransactionReference(id uuid.UUID) string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func (t *Transaction) IsRefunded() bool {
	return !t.RefundTransaction.IsZero()
}
