package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByBookingID struct {
	BookingID uuid.UUID
}

func (s ByBookingID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("booking_id = ?", s.BookingID)
}

type ByCustomerID struct {
	CustomerID uuid.UUID
}

func (s ByCustomerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ?", s.CustomerID)
}

// ByTransactionID matches refund requests raised against one transaction.
type ByTransactionID struct {
	TransactionID uuid.UUID
}

func (s ByTransactionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transaction_id = ?", s.TransactionID)
}

type ByExternalReference struct {
	Reference string
}

func (s ByExternalReference) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("external_reference = ?", s.Reference)
}
