package implementation

import (
	"context"
	"errors"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/mapper"
	"photostudio-be/internal/model"
	"photostudio-be/internal/repository/contract"
	"photostudio-be/internal/repository/specification"

	"gorm.io/gorm"
)

type bookingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookingMapper
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &bookingRepositoryImpl{db: db, mapper: mapper.NewBookingMapper()}
}

func (r *bookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *bookingRepositoryImpl) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return r.findOne(r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Photographer").
		Preload("Package").
		Preload("Service").
		Preload("Promo"), specs...)
}

func (r *bookingRepositoryImpl) findOne(query *gorm.DB, specs ...specification.Specification) (*entity.Booking, error) {
	var m model.Booking
	if err := specification.ApplyAll(query, specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type customerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookingMapper
}

func NewCustomerRepository(db *gorm.DB) contract.CustomerRepository {
	return &customerRepositoryImpl{db: db, mapper: mapper.NewBookingMapper()}
}

func (r *customerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error) {
	var m model.Customer
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CustomerToEntity(&m), nil
}
