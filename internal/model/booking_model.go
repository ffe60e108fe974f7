package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Mobile    string    `gorm:"type:varchar(30)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string {
	return "customers"
}

type Photographer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Mobile    string    `gorm:"type:varchar(30)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Photographer) TableName() string {
	return "photographers"
}

type Package struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Package) TableName() string {
	return "packages"
}

type Service struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Service) TableName() string {
	return "services"
}

type Promo struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Code            string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Promo) TableName() string {
	return "promos"
}

type Booking struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Reference      string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	BookingDate    time.Time       `gorm:"type:date;not null"`
	BookingTime    string          `gorm:"type:varchar(10)"`
	Status         string          `gorm:"type:varchar(20);not null;default:'Pending'"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PhotographerID uuid.UUID       `gorm:"type:uuid;not null"`
	PackageID      uuid.UUID       `gorm:"type:uuid;not null"`
	ServiceID      uuid.UUID       `gorm:"type:uuid;not null"`
	PromoID        *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relations
	Customer     *Customer     `gorm:"foreignKey:CustomerID"`
	Photographer *Photographer `gorm:"foreignKey:PhotographerID"`
	Package      *Package      `gorm:"foreignKey:PackageID"`
	Service      *Service      `gorm:"foreignKey:ServiceID"`
	Promo        *Promo        `gorm:"foreignKey:PromoID"`
}

func (Booking) TableName() string {
	return "bookings"
}
