package database

import (
	"log"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/config"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Grain{},
		&models.Warehouse{},
		&models.Contact{},
		&models.Transaction{},
		&models.PaymentRecord{},
		&models.DispatchRecord{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("automigrate failed: %v", err)
	}

	log.Println("database connected, migration complete")
}
