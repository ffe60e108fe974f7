package mapper

import (
	"photostudio-be/internal/entity"
	"photostudio-be/internal/model"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

// ToEntity expands every relation the query preloaded and leaves the rest as
// plain ids.
func (m *BookingMapper) ToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}
	return &entity.Booking{
		ID:           b.ID,
		Reference:    b.Reference,
		BookingDate:  b.BookingDate,
		BookingTime:  b.BookingTime,
		Status:       b.Status,
		TotalAmount:  b.TotalAmount,
		Customer:     entity.Expanded(b.CustomerID, m.CustomerToEntity(b.Customer)),
		Photographer: entity.Expanded(b.PhotographerID, m.photographerToEntity(b.Photographer)),
		Package:      entity.Expanded(b.PackageID, m.packageToEntity(b.Package)),
		Service:      entity.Expanded(b.ServiceID, m.serviceToEntity(b.Service)),
		Promo:        entity.OptionalRef(b.PromoID, m.promoToEntity(b.Promo)),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (m *BookingMapper) CustomerToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	return &entity.Customer{ID: c.ID, Name: c.Name, Email: c.Email, Mobile: c.Mobile}
}

func (m *BookingMapper) photographerToEntity(p *model.Photographer) *entity.Photographer {
	if p == nil {
		return nil
	}
	return &entity.Photographer{ID: p.ID, Name: p.Name, Email: p.Email, Mobile: p.Mobile}
}

func (m *BookingMapper) packageToEntity(p *model.Package) *entity.Package {
	if p == nil {
		return nil
	}
	return &entity.Package{ID: p.ID, Name: p.Name, Price: p.Price}
}

func (m *BookingMapper) serviceToEntity(s *model.Service) *entity.Service {
	if s == nil {
		return nil
	}
	return &entity.Service{ID: s.ID, Name: s.Name}
}

func (m *BookingMapper) promoToEntity(p *model.Promo) *entity.Promo {
	if p == nil {
		return nil
	}
	return &entity.Promo{ID: p.ID, Code: p.Code, DiscountPercent: p.DiscountPercent}
}
