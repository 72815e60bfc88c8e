package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smbooks-backend/internal/config"
	"smbooks-backend/internal/models"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.FinancialRecord{},
		&models.PayrollRecord{},
		&models.AssetLiability{},
		&models.Equity{},
		&models.LineItem{},
		&models.Quote{},
		&models.Invoice{},
		&models.PurchaseOrder{},
		&models.Bill{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Category enumeration is enforced at the schema level too; AutoMigrate
	// does not emit CHECK constraints.
	var constraintExists bool
	DB.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.table_constraints
			WHERE table_name = 'asset_liabilities'
			AND constraint_name = 'ck_asset_liability_category'
		)
	`).Scan(&constraintExists)

	if !constraintExists {
		if err := DB.Exec(`
			ALTER TABLE asset_liabilities
			ADD CONSTRAINT ck_asset_liability_category
			CHECK (category IN ('Asset', 'Liability'))
		`).Error; err != nil {
			log.Printf("Could not add asset/liability category check: %v", err)
		} else {
			log.Println("asset_liabilities category check constraint added")
		}
	}

	log.Println("Database connection ready. Migration complete.")
}
