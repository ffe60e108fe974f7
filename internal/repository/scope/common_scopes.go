package scope

import "gorm.io/gorm"

// BookingContext preloads everything a booking references.
func BookingContext(prefix string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Preload(prefix + "Booking.Customer").
			Preload(prefix + "Booking.Photographer").
			Preload(prefix + "Booking.Package").
			Preload(prefix + "Booking.Service").
			Preload(prefix + "Booking.Promo")
	}
}

// TransactionDetails is the ledger view: booking context, customer and
// both refund cross-links.
func TransactionDetails(db *gorm.DB) *gorm.DB {
	return db.
		Scopes(BookingContext("")).
		Preload("Customer").
		Preload("OriginalTransaction").
		Preload("RefundTransaction")
}

// RequestSummary is the review queue view: one level of transaction, booking,
// customer and reviewer.
func RequestSummary(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Transaction").
		Preload("Booking").
		Preload("Customer").
		Preload("Reviewer")
}

// RequestDetails is the administrative view of a single request.
func RequestDetails(db *gorm.DB) *gorm.DB {
	return db.
		Scopes(BookingContext("Transaction.")).
		Scopes(BookingContext("")).
		Preload("Transaction.Customer").
		Preload("Customer").
		Preload("Reviewer")
}
