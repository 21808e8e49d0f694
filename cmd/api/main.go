package main

import (
	"fmt"
	"net/http"
	"os"

	"outlay/internal/config"
	"outlay/internal/database"
	"outlay/internal/handlers"
	"outlay/internal/logger"
	"outlay/internal/middleware"
	"outlay/internal/services"
	"outlay/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "outlay/internal/docs" // Import swagger docs
)

// @title           Outlay API
// @version         1.0
// @description     Outlay is a personal finance backend for tracking incomes and expenses, expanding recurring expenses into payment schedules, and summarising spending by month.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	auditService := services.NewAuditService(db)
	expenseService := services.NewExpenseService(db, accountService)
	incomeService := services.NewIncomeService(db, accountService)
	paymentService := services.NewPaymentService(db, accountService)
	modifierService := services.NewModifierService(db, accountService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	accountHandler := handlers.NewAccountHandler(accountService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	modifierHandler := handlers.NewModifierHandler(modifierService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and account
	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/account", accountHandler.GetAccount)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/by_category", expenseHandler.GetExpensesByCategory)
	expenses.GET("/recent", expenseHandler.GetRecentExpenses)
	expenses.GET("/by_month", expenseHandler.GetExpensesByMonth)
	expenses.GET("/so_far", expenseHandler.GetExpensesSoFar)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Income routes
	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.GET("/:id", incomeHandler.GetIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	// Payment routes (read-only)
	payments := protected.Group("/payments")
	payments.GET("", paymentHandler.GetPayments)
	payments.GET("/upcoming", paymentHandler.GetUpcomingPayments)
	payments.GET("/:id", paymentHandler.GetPayment)

	// Amount modifier routes
	modifiers := protected.Group("/modifiers")
	modifiers.POST("", modifierHandler.CreateModifier)
	modifiers.GET("", modifierHandler.GetModifiers)
	modifiers.GET("/:id", modifierHandler.GetModifier)
	modifiers.DELETE("/:id", modifierHandler.DeleteModifier)

	log.Infof("Starting Outlay backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
