package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stockflowhq/stockflow-api/internal/application/service"
	"github.com/stockflowhq/stockflow-api/internal/config"
	"github.com/stockflowhq/stockflow-api/internal/infrastructure/database"
	"github.com/stockflowhq/stockflow-api/internal/infrastructure/repository"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/handler"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/routes"
	"github.com/stockflowhq/stockflow-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	creditLedgerRepo := repository.NewCreditLedgerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	upfrontRepo := repository.NewUpfrontOrderRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	cashSessionRepo := repository.NewCashSessionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, categoryRepo, cfg.Store.LowStockThreshold)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	customerService := service.NewCustomerService(customerRepo, creditLedgerRepo)
	transactionService := service.NewTransactionService(ledgerRepo, transactionRepo)
	upfrontService := service.NewUpfrontService(upfrontRepo, customerRepo)
	financeService := service.NewFinanceService(expenseRepo, cashSessionRepo)
	reportService := service.NewReportService(transactionRepo, productRepo, customerRepo, expenseRepo, cfg.Store.LowStockThreshold)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(productService),
		Category:    handler.NewCategoryHandler(categoryService),
		Customer:    handler.NewCustomerHandler(customerService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Upfront:     handler.NewUpfrontHandler(upfrontService),
		Finance:     handler.NewFinanceHandler(financeService),
		Report:      handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
