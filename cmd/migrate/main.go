package main

import (
	"context"
	"log"
	"os"

	"photostudio-be/internal/model"
	"photostudio-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	log.Println("Starting GORM Migration...")

	// 2. Pre-Migration: gen_random_uuid() lives in pgcrypto on older servers
	log.Println("Step 1: Setting up Extensions...")
	if err := database.Exec(context.Background(), dsn, `CREATE EXTENSION IF NOT EXISTS pgcrypto;`); err != nil {
		log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
	}

	db, err := database.NewGormDBFromDSN(dsn, database.DefaultOptions(false))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate. Referenced tables first.
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Customer{},
		&model.Photographer{},
		&model.Package{},
		&model.Service{},
		&model.Promo{},
		&model.Booking{},
		&model.Transaction{},
		&model.TransactionRequest{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-Migration: constraints AutoMigrate cannot express
	log.Println("Step 3: Creating constraints and views...")

	postMigrationSQL := []string{
		// At most one open review ticket per transaction.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_transaction_requests_one_pending
		 ON transaction_requests (transaction_id)
		 WHERE status = 'Pending' AND is_active;`,

		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_transactions_amount_positive') THEN
		     ALTER TABLE transactions ADD CONSTRAINT chk_transactions_amount_positive CHECK (amount > 0);
		   END IF;
		 END $$;`,

		`CREATE OR REPLACE VIEW booking_ledger_totals AS
		 SELECT booking_id,
		        COALESCE(SUM(amount) FILTER (WHERE status = 'Completed'), 0) AS total_paid,
		        COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'Refund'), 0) AS total_refunded
		 FROM transactions
		 WHERE is_active
		 GROUP BY booking_id;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
