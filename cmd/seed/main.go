package main

import (
	"log"
	"os"
	"time"

	"photostudio-be/internal/model"
	"photostudio-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, database.DefaultOptions(true))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding staff accounts...")
	seedUsers(db)

	color.Cyan("Seeding demo booking...")
	seedBooking(db)

	color.Green("✅ Seeding completed!")
}

func seedUsers(db *gorm.DB) {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
		color.Yellow("SEED_ADMIN_PASSWORD not set, using the development default")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	users := []model.User{
		{Name: "Studio Admin", Email: "admin@studio.local", Role: "admin", PasswordHash: string(hash), IsActive: true},
		{Name: "Gateway", Email: "system@studio.local", Role: "staff", PasswordHash: string(hash), IsActive: false},
	}

	for _, u := range users {
		var existing model.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping... (id %s)", u.Email, existing.ID)
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			color.Red("Error creating user '%s': %v", u.Email, err)
			continue
		}
		color.Green("Created user: %s (%s) id=%s", u.Name, u.Role, u.ID)
	}
}

// seedBooking creates one booking with every reference filled so the ledger
// endpoints have something to work against.
func seedBooking(db *gorm.DB) {
	const reference = "BK-DEMO-001"

	var existing model.Booking
	if err := db.Where("reference = ?", reference).First(&existing).Error; err == nil {
		color.Yellow("Booking '%s' already exists, skipping...", reference)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		customer := model.Customer{Name: "Demo Customer", Email: "customer@studio.local", Mobile: "+620000000001"}
		photographer := model.Photographer{Name: "Demo Photographer", Email: "photographer@studio.local", Mobile: "+620000000002"}
		pkg := model.Package{Name: "Prewedding Gold", Price: decimal.NewFromInt(5000000)}
		service := model.Service{Name: "Outdoor Session"}
		promo := model.Promo{Code: "DEMO10", DiscountPercent: decimal.NewFromInt(10)}

		for _, row := range []interface{}{&customer, &photographer, &pkg, &service, &promo} {
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		booking := model.Booking{
			Reference:      reference,
			BookingDate:    time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour),
			BookingTime:    "09:00",
			Status:         "Confirmed",
			TotalAmount:    decimal.NewFromInt(4500000),
			CustomerID:     customer.ID,
			PhotographerID: photographer.ID,
			PackageID:      pkg.ID,
			ServiceID:      service.ID,
			PromoID:        &promo.ID,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		color.Green("Created booking: %s id=%s", booking.Reference, booking.ID)
		return nil
	})
	if err != nil {
		color.Red("Error seeding booking: %v", err)
	}
}
