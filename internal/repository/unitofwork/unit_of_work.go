package unitofwork

import (
	"context"

	"photostudio-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CustomerRepository() contract.CustomerRepository
	BookingRepository() contract.BookingRepository
	TransactionRepository() contract.TransactionRepository
	TransactionRequestRepository() contract.TransactionRequestRepository
}
