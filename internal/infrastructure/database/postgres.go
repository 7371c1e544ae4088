package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stockflowhq/stockflow-api/internal/config"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},

		// Customer entities
		&entity.Customer{},
		&entity.UpfrontOrder{},

		// Ledger entities
		&entity.Transaction{},
		&entity.TransactionItem{},
		&entity.ReturnSettlement{},
		&entity.CreditLedgerEntry{},

		// Finance entities
		&entity.Expense{},
		&entity.CashSession{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the owner account configured via environment
// variables, if it does not already exist
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	storeName := viper.GetString("STORE_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash owner password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Store Owner"
				}
				owner := entity.User{
					ID:        uuid.New(),
					Name:      adminName,
					Email:     adminEmail,
					Password:  string(hashedPassword),
					StoreName: storeName,
					Role:      "owner",
				}
				if err := db.Create(&owner).Error; err != nil {
					log.Printf("Warning: failed to create owner user: %v", err)
				} else {
					log.Printf("Owner user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Owner user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
