package memuow

import (
	"time"

	"photostudio-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fixture is one fully populated booking plus an admin to act on it.
type Fixture struct {
	Admin    entity.User
	Customer entity.Customer
	Booking  entity.Booking
}

// Seed fills the store with a booking whose every reference resolves.
func Seed(s *Store) Fixture {
	admin := entity.User{
		ID:       uuid.New(),
		Name:     "Studio Admin",
		Email:    "admin@studio.test",
		Mobile:   "+62811000001",
		Role:     entity.UserRoleAdmin,
		IsActive: true,
	}
	customer := entity.Customer{ID: uuid.New(), Name: "Rina Hartono", Email: "rina@example.com", Mobile: "+62811000002"}
	photographer := entity.Photographer{ID: uuid.New(), Name: "Dimas", Email: "dimas@studio.test", Mobile: "+62811000003"}
	pkg := entity.Package{ID: uuid.New(), Name: "Prewedding Gold", Price: decimal.NewFromInt(5000)}
	service := entity.Service{ID: uuid.New(), Name: "Outdoor Session"}
	promo := entity.Promo{ID: uuid.New(), Code: "HEMAT10", DiscountPercent: decimal.NewFromInt(10)}

	booking := entity.Booking{
		ID:           uuid.New(),
		Reference:    "BK-0001",
		BookingDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		BookingTime:  "09:00",
		Status:       "Confirmed",
		TotalAmount:  decimal.NewFromInt(4500),
		Customer:     entity.RefTo[entity.Customer](customer.ID),
		Photographer: entity.RefTo[entity.Photographer](photographer.ID),
		Package:      entity.RefTo[entity.Package](pkg.ID),
		Service:      entity.RefTo[entity.Service](service.ID),
		Promo:        entity.RefTo[entity.Promo](promo.ID),
	}

	s.AddUser(admin)
	s.AddCustomer(customer)
	s.AddPhotographer(photographer)
	s.AddPackage(pkg)
	s.AddService(service)
	s.AddPromo(promo)
	s.AddBooking(booking)

	return Fixture{Admin: admin, Customer: customer, Booking: booking}
}

// Payment stores an active payment on the fixture booking.
func (f Fixture) Payment(s *Store, amount int64, status entity.TransactionStatus) entity.Transaction {
	id := uuid.New()
	txn := entity.Transaction{
		ID:                 id,
		Reference:          entity.NewTransactionReference(id),
		Booking:            entity.RefTo[entity.Booking](f.Booking.ID),
		Customer:           entity.RefTo[entity.Customer](f.Customer.ID),
		Amount:             decimal.NewFromInt(amount),
		TransactionType:    entity.TransactionTypePayment,
		PaymentMethod:      "Bank Transfer",
		Status:             status,
		PaymentProofImages: []string{},
		IsActive:           true,
	}
	s.AddTransaction(txn)
	stored, _ := s.Transaction(id)
	return stored
}
