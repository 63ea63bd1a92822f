package router

import (
	"net/http"
	"time"

	"github.com/normie1221/Sanchay/api"
	"github.com/normie1221/Sanchay/config"
	_ "github.com/normie1221/Sanchay/docs"
	"github.com/normie1221/Sanchay/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires every endpoint onto a gin engine.
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(CORSMiddleware())

	// Exported report files are served as static downloads.
	r.Static("/reports", cfg.Reports.Dir)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		}

		// Category reference data needs no login.
		categoryHandler := api.NewCategoryHandler()
		v1.GET("/categories", categoryHandler.List)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		authorized.Use(middleware.UserRateLimit(
			cfg.RateLimit.MaxRequests,
			time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			expenseHandler := api.NewExpenseHandler(cfg)
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.GET("/:id", expenseHandler.Get)
				expenses.PUT("/:id", expenseHandler.Update)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			incomeHandler := api.NewIncomeHandler()
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.GET("/:id", incomeHandler.Get)
				incomes.PUT("/:id", incomeHandler.Update)
				incomes.DELETE("/:id", incomeHandler.Delete)
			}

			budgetHandler := api.NewBudgetHandler()
			budgets := authorized.Group("/budgets")
			{
				budgets.POST("", budgetHandler.Create)
				budgets.GET("", budgetHandler.List)
				budgets.GET("/:id", budgetHandler.Get)
				budgets.PUT("/:id", budgetHandler.Update)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			goalHandler := api.NewGoalHandler()
			goals := authorized.Group("/goals")
			{
				goals.POST("", goalHandler.Create)
				goals.GET("", goalHandler.List)
				goals.GET("/:id", goalHandler.Get)
				goals.PUT("/:id", goalHandler.Update)
				goals.DELETE("/:id", goalHandler.Delete)
			}

			fraudHandler := api.NewFraudHandler()
			fraud := authorized.Group("/fraud")
			{
				fraud.POST("/analyze/:id", fraudHandler.Analyze)
				fraud.POST("/scan", fraudHandler.Scan)
				fraud.GET("/alerts", fraudHandler.ListAlerts)
				fraud.POST("/alerts/:id/resolve", fraudHandler.ResolveAlert)
			}

			analyticsHandler := api.NewAnalyticsHandler(cfg)
			analytics := authorized.Group("/analytics")
			{
				analytics.GET("", analyticsHandler.Overview)
				analytics.GET("/predictions", analyticsHandler.Predictions)
				analytics.GET("/recurring", analyticsHandler.Recurring)
				analytics.GET("/upcoming-bills", analyticsHandler.UpcomingBills)
				analytics.GET("/budget-recommendations", analyticsHandler.BudgetRecommendations)
				analytics.POST("/budgets", analyticsHandler.CreateAIBudgets)
				analytics.GET("/budget-adjustments", analyticsHandler.BudgetAdjustments)
				analytics.GET("/recommendations", analyticsHandler.Recommendations)
				analytics.GET("/anomalies", analyticsHandler.Anomalies)
				analytics.GET("/health-score", analyticsHandler.HealthScore)
				analytics.GET("/spending-patterns", analyticsHandler.SpendingPatterns)
				analytics.GET("/savings-opportunities", analyticsHandler.SavingsOpportunities)
			}

			dashboardHandler := api.NewDashboardHandler()
			authorized.GET("/dashboard", dashboardHandler.Overview)

			reportHandler := api.NewReportHandler(cfg)
			reports := authorized.Group("/reports")
			{
				reports.GET("", reportHandler.List)
				reports.POST("", reportHandler.Generate)
				reports.GET("/monthly-summary", reportHandler.MonthlySummary)
				reports.GET("/expense-analysis", reportHandler.ExpenseAnalysis)
			}

			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
			}
		}
	}

	return r
}

// CORSMiddleware allows cross-origin requests from any origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
