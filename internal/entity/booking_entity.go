package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Mobile string
}

type Photographer struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Mobile string
}

type Package struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

type Service struct {
	ID   uuid.UUID
	Name string
}

type Promo struct {
	ID              uuid.UUID
	Code            string
	DiscountPercent decimal.Decimal
}

type Booking struct {
	ID           uuid.UUID
	Reference    string
	BookingDate  time.Time
	BookingTime  string
	Status       string
	TotalAmount  decimal.Decimal
	Customer     Ref[Customer]
	Photographer Ref[Photographer]
	Package      Ref[Package]
	Service      Ref[Service]
	Promo        Ref[Promo]
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
