package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Transaction struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Reference          string                      `gorm:"type:varchar(20);uniqueIndex;not null"`
	BookingID          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CustomerID         uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Amount             decimal.Decimal             `gorm:"type:decimal(12,2);not null"`
	TransactionType    string                      `gorm:"type:varchar(20);not null"` // Payment, Refund
	PaymentMethod      string                      `gorm:"type:varchar(50);not null"`
	Status             string                      `gorm:"type:varchar(20);not null;default:'Pending';index"` // Pending, Completed, Failed
	PaymentProofImages datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	ExternalReference  *string                     `gorm:"type:varchar(255)"`
	TransactionDate    time.Time                   `gorm:"not null"`
	ProcessedAt        *time.Time
	FailedAt           *time.Time
	RefundedAt         *time.Time
	Notes              string `gorm:"type:text"`
	FailureReason      string `gorm:"type:text"`
	RefundReason       string `gorm:"type:text"`

	OriginalTransactionID *uuid.UUID `gorm:"type:uuid;index"`
	RefundTransactionID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	IsActive  bool       `gorm:"not null;default:true;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	DeletedBy *uuid.UUID `gorm:"type:uuid"`
	DeletedAt *time.Time
	Version   int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Booking             *Booking     `gorm:"foreignKey:BookingID"`
	Customer            *Customer    `gorm:"foreignKey:CustomerID"`
	OriginalTransaction *Transaction `gorm:"foreignKey:OriginalTransactionID"`
	RefundTransaction   *Transaction `gorm:"foreignKey:RefundTransactionID"`
}

func (Transaction) TableName() string {
	return "transactions"
}
