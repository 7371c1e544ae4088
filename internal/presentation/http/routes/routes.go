package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockflowhq/stockflow-api/internal/config"
	domainRepo "github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/handler"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/middleware"
	"github.com/stockflowhq/stockflow-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Upfront     *handler.UpfrontHandler
	Finance     *handler.FinanceHandler
	Report      *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerTransactionRoutes(protected, h, deps)
	registerUpfrontRoutes(protected, h, deps)
	registerFinanceRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/next-barcode", h.Product.NextBarcode)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Rename)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/with-due", h.Customer.ListWithDue)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/credit-ledger", h.Customer.GetCreditLedger)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		// Transaction submission uses idempotency middleware so retried
		// requests cannot double-apply
		transactions.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Transaction.Process)
		transactions.GET("/:id", h.Transaction.Get)
	}
}

func registerUpfrontRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	upfront := protected.Group("/upfront-orders")
	// Money-moving upfront posts honor idempotency keys when supplied
	upfront.Use(middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}))
	{
		upfront.GET("", h.Upfront.List)
		upfront.POST("", h.Upfront.Create)
		upfront.GET("/:id", h.Upfront.Get)
		upfront.POST("/:id/collect", h.Upfront.CollectPayment)
		upfront.DELETE("/:id", h.Upfront.Delete)
	}
}

func registerFinanceRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Finance.ListExpenses)
		expenses.POST("", h.Finance.CreateExpense)
		expenses.GET("/breakdown", h.Finance.ExpenseBreakdown)
		expenses.DELETE("/:id", h.Finance.DeleteExpense)
	}

	sessions := protected.Group("/cash-sessions")
	{
		sessions.GET("", h.Finance.ListCashSessions)
		sessions.POST("/open", h.Finance.OpenCashSession)
		sessions.POST("/close", h.Finance.CloseCashSession)
		sessions.GET("/open", h.Finance.GetOpenCashSession)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/summary", h.Report.GetSummary)
		reports.GET("/export/inventory", h.Report.ExportInventory)
		reports.GET("/export/transactions", h.Report.ExportTransactions)
	}
}
