package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/coder11a/personal-finance-visualizer/internal/config"
	"github.com/coder11a/personal-finance-visualizer/internal/database"
	_ "github.com/coder11a/personal-finance-visualizer/internal/docs" // Import swagger docs
	"github.com/coder11a/personal-finance-visualizer/internal/handlers"
	"github.com/coder11a/personal-finance-visualizer/internal/logger"
	"github.com/coder11a/personal-finance-visualizer/internal/middleware"
	"github.com/coder11a/personal-finance-visualizer/internal/services"
	"github.com/coder11a/personal-finance-visualizer/internal/validator"
)

// @title           Personal Finance Visualizer API
// @version         1.0
// @description     Backend for a personal finance dashboard: record income and expense transactions, set monthly category budgets, and read aggregated reports.

// @host      localhost:8080
// @BasePath  /api

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	insightService := services.NewInsightService(db)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	insightHandler := handlers.NewInsightHandler(insightService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/categories", transactionHandler.GetCategoryBreakdown)
	transactions.GET("/monthly", transactionHandler.GetMonthlySummary)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := api.Group("/budgets")
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("/comparison", budgetHandler.GetBudgetComparison)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	api.GET("/insights", insightHandler.GetInsights)

	log.Infof("Starting finance dashboard API on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
