package api

import (
	"strconv"
	"time"

	"github.com/normie1221/Sanchay/config"
	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/models"
	"github.com/normie1221/Sanchay/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the analytics and planning endpoints.
type AnalyticsHandler struct {
	prediction *service.PredictionService
	planner    *service.BudgetPlanner
	health     *service.HealthService
	fraud      *service.FraudService
	reports    *service.ReportService
}

// NewAnalyticsHandler creates an analytics handler.
func NewAnalyticsHandler(cfg *config.Config) *AnalyticsHandler {
	var provider service.RecommendationProvider
	if cfg.FinanceAPI.Enabled() {
		provider = service.NewFinanceAPIProvider(cfg.FinanceAPI)
	}
	return &AnalyticsHandler{
		prediction: service.NewPredictionService(),
		planner:    service.NewBudgetPlanner(),
		health:     service.NewHealthService(provider),
		fraud:      service.NewFraudService(),
		reports:    service.NewReportService(cfg.Reports.Dir),
	}
}

// monthTotal is one month's aggregate for the trend chart.
type monthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// Overview returns the current month at a glance
// @Summary Analytics overview
// @Description Current month summary, category breakdown, six-month trend and top expenses
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "overview"
// @Router /api/v1/analytics [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	now := time.Now()
	summary, err := h.reports.MonthlySummary(userID, now.Year(), int(now.Month()))
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build summary"))
		return
	}

	sixMonthsAgo := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

	var expenseTrend []monthTotal
	if err := database.DB.Model(&models.Expense{}).
		Select("DATE_FORMAT(expense_date, '%Y-%m') AS month, SUM(amount) AS total").
		Where("user_id = ? AND expense_date >= ?", userID, sixMonthsAgo).
		Group("month").Order("month").
		Scan(&expenseTrend).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build trend"))
		return
	}

	var incomeTrend []monthTotal
	if err := database.DB.Model(&models.Income{}).
		Select("DATE_FORMAT(income_date, '%Y-%m') AS month, SUM(amount) AS total").
		Where("user_id = ? AND income_date >= ?", userID, sixMonthsAgo).
		Group("month").Order("month").
		Scan(&incomeTrend).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build trend"))
		return
	}

	Success(c, gin.H{
		"summary":       summary,
		"expense_trend": expenseTrend,
		"income_trend":  incomeTrend,
	})
}

// Predictions forecasts next month's spending
// @Summary Expense predictions
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.PredictionResult} "prediction"
// @Router /api/v1/analytics/predictions [get]
func (h *AnalyticsHandler) Predictions(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result, err := h.prediction.PredictNextMonth(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "prediction failed"))
		return
	}

	Success(c, result)
}

// Recurring lists merchants with a regular charge cadence
// @Summary Recurring expenses
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.RecurringExpense} "recurring"
// @Router /api/v1/analytics/recurring [get]
func (h *AnalyticsHandler) Recurring(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	recurring, err := h.prediction.DetectRecurring(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "recurring detection failed"))
		return
	}

	Success(c, recurring)
}

// UpcomingBills lists recurring charges expected soon
// @Summary Upcoming bills
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "horizon in days, default 30"
// @Success 200 {object} Response{data=service.UpcomingBills} "bills"
// @Router /api/v1/analytics/upcoming-bills [get]
func (h *AnalyticsHandler) UpcomingBills(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	bills, err := h.prediction.PredictUpcomingBills(userID, days)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "bill prediction failed"))
		return
	}

	Success(c, bills)
}

// BudgetRecommendations suggests per-category limits
// @Summary Budget recommendations
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "budget period, default MONTHLY"
// @Success 200 {object} Response{data=service.RecommendationResult} "recommendations"
// @Router /api/v1/analytics/budget-recommendations [get]
func (h *AnalyticsHandler) BudgetRecommendations(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result, err := h.planner.GenerateRecommendations(userID, c.Query("period"))
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "recommendation failed"))
		return
	}

	Success(c, result)
}

// CreateAIBudgets materializes the recommendations as budgets
// @Summary Create AI budgets
// @Description Create a monthly budget per recommendation for the current month
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Budget} "created budgets"
// @Router /api/v1/analytics/budgets [post]
func (h *AnalyticsHandler) CreateAIBudgets(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	budgets, err := h.planner.CreateAIBudgets(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create budgets"))
		return
	}

	SuccessWithMessage(c, "budgets created", budgets)
}

// BudgetAdjustments reviews active budgets for limit changes
// @Summary Budget adjustments
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.BudgetAdjustment} "adjustments"
// @Router /api/v1/analytics/budget-adjustments [get]
func (h *AnalyticsHandler) BudgetAdjustments(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	adjustments, err := h.planner.AdjustBudgets(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "adjustment review failed"))
		return
	}

	Success(c, adjustments)
}

// Recommendations returns personalized financial advice
// @Summary Recommendations
// @Description Rule-based advice, enriched by the external provider when configured
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.Recommendation} "advice"
// @Router /api/v1/analytics/recommendations [get]
func (h *AnalyticsHandler) Recommendations(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	recs, err := h.health.GenerateRecommendations(c.Request.Context(), userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "recommendation failed"))
		return
	}

	Success(c, recs)
}

// Anomalies lists statistical outliers among recent expenses
// @Summary Spending anomalies
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.AnomalyResult} "anomalies"
// @Router /api/v1/analytics/anomalies [get]
func (h *AnalyticsHandler) Anomalies(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result, err := h.fraud.DetectAnomalies(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "anomaly detection failed"))
		return
	}

	Success(c, result)
}

// HealthScore returns the financial health assessment
// @Summary Health score
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.HealthScore} "health score"
// @Router /api/v1/analytics/health-score [get]
func (h *AnalyticsHandler) HealthScore(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	health, err := h.health.CalculateHealthScore(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "health scoring failed"))
		return
	}

	Success(c, health)
}

// SpendingPatterns returns the recent category distribution
// @Summary Spending patterns
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.SpendingPatterns} "patterns"
// @Router /api/v1/analytics/spending-patterns [get]
func (h *AnalyticsHandler) SpendingPatterns(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	patterns, err := h.health.AnalyzeSpendingPatterns(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "pattern analysis failed"))
		return
	}

	Success(c, patterns)
}

// SavingsOpportunities flags categories spending above benchmark
// @Summary Savings opportunities
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.SavingsOpportunity} "opportunities"
// @Router /api/v1/analytics/savings-opportunities [get]
func (h *AnalyticsHandler) SavingsOpportunities(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	opportunities, err := h.health.SavingsOpportunities(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "opportunity analysis failed"))
		return
	}

	Success(c, opportunities)
}
