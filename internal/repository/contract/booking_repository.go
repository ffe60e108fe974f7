package contract

import (
	"context"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/repository/specification"
)

type BookingRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
}

type CustomerRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error)
}
