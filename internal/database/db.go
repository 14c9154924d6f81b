package database

import (
	"log"

	"backoffice-backend/internal/config"
	"backoffice-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("database connected, migration complete")
}

// Migrate is shared with the test suite, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SalesLog{},
		&models.OperatingExpense{},
		&models.PayrollExpense{},
		&models.MonthlySummary{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Recipe{},
		&models.RecipeItem{},
		&models.HighlightRule{},
		&models.AuditLog{},
	)
}
