package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionRequest struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TransactionID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	BookingID       uuid.UUID        `gorm:"type:uuid;not null"`
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	RequestType     string           `gorm:"type:varchar(20);not null;default:'Refund'"`
	Status          string           `gorm:"type:varchar(20);not null;default:'Pending';index"` // Pending, Approved, Rejected
	Reason          string           `gorm:"type:text"`
	RequestedAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	RejectionReason string           `gorm:"type:text"`
	AdminNotes      string           `gorm:"type:text"`
	ReviewedBy      *uuid.UUID       `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	IsActive        bool       `gorm:"not null;default:true"`
	CreatedBy       *uuid.UUID `gorm:"type:uuid"`
	UpdatedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relations
	Transaction *Transaction `gorm:"foreignKey:TransactionID"`
	Booking     *Booking     `gorm:"foreignKey:BookingID"`
	Customer    *Customer    `gorm:"foreignKey:CustomerID"`
	Reviewer    *User        `gorm:"foreignKey:ReviewedBy"`
}

func (TransactionRequest) TableName() string {
	return "transaction_requests"
}
