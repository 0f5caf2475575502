package main

import (
	"fmt"
	"net/http"
	"os"

	"zerosum/internal/config"
	"zerosum/internal/database"
	"zerosum/internal/handlers"
	"zerosum/internal/logger"
	"zerosum/internal/middleware"
	"zerosum/internal/services"
	"zerosum/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "zerosum/internal/docs" // Import swagger docs
)

// @title           ZeroSum API
// @version         1.0
// @description     ZeroSum is a zero-based budgeting application covering envelope budgeting, cash-flow forecasting, debt payoff planning, and what-if scenarios.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	accountService := services.NewAccountService(db)
	transactionService := services.NewTransactionService(db)
	billService := services.NewBillService(db)
	debtService := services.NewDebtService(db)
	goalService := services.NewGoalService(db)
	incomeService := services.NewIncomeService(db)
	forecastService := services.NewForecastService(db, appConfig.RunwayWarningMonths, appConfig.ForecastHorizon)
	rebalanceService := services.NewRebalanceService(db)
	scenarioService := services.NewScenarioService(db, appConfig.ForecastHorizon)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	billHandler := handlers.NewBillHandler(billService)
	debtHandler := handlers.NewDebtHandler(debtService)
	goalHandler := handlers.NewGoalHandler(goalService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	forecastHandler := handlers.NewForecastHandler(forecastService)
	rebalanceHandler := handlers.NewRebalanceHandler(rebalanceService)
	scenarioHandler := handlers.NewScenarioHandler(scenarioService)

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

	// Category group routes
	groups := v1.Group("/groups")
	groups.POST("", categoryHandler.CreateGroup)
	groups.GET("", categoryHandler.GetGroups)
	groups.PUT("/:id", categoryHandler.RenameGroup)
	groups.DELETE("/:id", categoryHandler.DeleteGroup)

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.POST("/:id/archive", categoryHandler.ArchiveCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Budget routes
	budget := v1.Group("/budget")
	budget.POST("/assign", budgetHandler.Assign)
	budget.GET("/:month", budgetHandler.GetMonthSummary)
	budget.GET("/:month/categories/:id", budgetHandler.GetCategoryLedger)
	budget.GET("/:month/groups/:id", budgetHandler.GetGroupRollup)

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.POST("/:id/reconcile", accountHandler.ReconcileBalance)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Bill routes
	bills := v1.Group("/bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.GetBills)
	bills.GET("/due-soon", billHandler.GetDueSoon)
	bills.GET("/overdue", billHandler.GetOverdue)
	bills.GET("/:id", billHandler.GetBillByID)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)
	bills.POST("/:id/paid", billHandler.MarkPaid)
	bills.POST("/:id/trailing-average", billHandler.RecordTrailingAverage)

	// Debt routes
	debts := v1.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.POST("/simulate", debtHandler.SimulatePayoff)
	debts.POST("/compare", debtHandler.ComparePayoffMethods)
	debts.GET("/:id", debtHandler.GetDebtByID)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	// Goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/status", goalHandler.SetGoalStatus)
	goals.POST("/:id/contributions", goalHandler.Contribute)
	goals.GET("/:id/progress", goalHandler.GetProgress)

	// Income source routes
	incomeSources := v1.Group("/income-sources")
	incomeSources.POST("", incomeHandler.CreateIncomeSource)
	incomeSources.GET("", incomeHandler.GetIncomeSources)
	incomeSources.PUT("/:id", incomeHandler.UpdateIncomeSource)
	incomeSources.DELETE("/:id", incomeHandler.DeleteIncomeSource)

	// Forecast routes
	forecast := v1.Group("/forecast")
	forecast.GET("/runway", forecastHandler.GetRunway)
	forecast.GET("/projection", forecastHandler.GetProjection)

	// Rebalance routes
	rebalance := v1.Group("/rebalance")
	rebalance.GET("/:month/suggest", rebalanceHandler.Suggest)
	rebalance.POST("/apply", rebalanceHandler.Apply)
	rebalance.GET("/reassignments", rebalanceHandler.GetReassignments)
	rebalance.POST("/reassignments/:id/reverse", rebalanceHandler.Reverse)

	// Scenario routes
	scenarios := v1.Group("/scenarios")
	scenarios.POST("", scenarioHandler.CreateScenario)
	scenarios.GET("", scenarioHandler.GetScenarios)
	scenarios.GET("/shocks", scenarioHandler.GetShockTemplates)
	scenarios.POST("/compare", scenarioHandler.CompareScenarios)
	scenarios.GET("/:id", scenarioHandler.GetScenarioByID)
	scenarios.DELETE("/:id", scenarioHandler.DeleteScenario)
	scenarios.GET("/:id/forecast", scenarioHandler.ForecastScenario)
	scenarios.POST("/:id/apply", scenarioHandler.ApplyToPlan)

	log.Infof("Starting ZeroSum backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
