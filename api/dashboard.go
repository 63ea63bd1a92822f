package api

import (
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/models"

	"github.com/gin-gonic/gin"
)

// DashboardHandler aggregates the landing page data in one request.
type DashboardHandler struct{}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// periodDays maps the period selector to a lookback window.
func periodDays(period string) int {
	switch period {
	case "week":
		return 7
	case "year":
		return 365
	default:
		return 30
	}
}

// Overview returns the dashboard snapshot
// @Summary Dashboard
// @Description Totals, budgets, goals, recent transactions and pending alerts
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param period query string false "week, month or year, default month"
// @Success 200 {object} Response "dashboard"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	days := periodDays(c.DefaultQuery("period", "month"))
	since := time.Now().AddDate(0, 0, -days)

	var totalExpenses float64
	if err := database.DB.Model(&models.Expense{}).
		Where("user_id = ? AND expense_date >= ?", userID, since).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalExpenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load dashboard"))
		return
	}

	var totalIncome float64
	if err := database.DB.Model(&models.Income{}).
		Where("user_id = ? AND income_date >= ?", userID, since).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalIncome).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load dashboard"))
		return
	}

	var expenseCount int64
	if err := database.DB.Model(&models.Expense{}).
		Where("user_id = ? AND expense_date >= ?", userID, since).
		Count(&expenseCount).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load dashboard"))
		return
	}

	var suspiciousCount int64
	if err := database.DB.Model(&models.Expense{}).
		Where("user_id = ? AND expense_date >= ? AND is_suspicious = ?", userID, since, true).
		Count(&suspiciousCount).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load dashboard"))
		return
	}

	var recentExpenses []models.Expense
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("expense_date DESC").Limit(10).
		Find(&recentExpenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load dashboard"))
		return
	}

	now := time.Now()
	var budgets []models.Budget
	if err := database.DB.
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, now, now).
		Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load dashboard"))
		return
	}
	budgetViews := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		budgetViews = append(budgetViews, budgetView(b))
	}

	var goals []models.FinancialGoal
	if err := database.DB.
		Where("user_id = ? AND status = ?", userID, models.GoalStatusInProgress).
		Order("priority DESC").
		Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load dashboard"))
		return
	}
	goalViews := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		goalViews = append(goalViews, goalView(g))
	}

	var pendingAlerts []models.FraudAlert
	if err := database.DB.
		Where("user_id = ? AND status = ?", userID, models.AlertStatusPending).
		Order("created_at DESC").Limit(5).
		Find(&pendingAlerts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load dashboard"))
		return
	}

	Success(c, gin.H{
		"period_days":      days,
		"total_income":     totalIncome,
		"total_expenses":   totalExpenses,
		"net":              totalIncome - totalExpenses,
		"expense_count":    expenseCount,
		"suspicious_count": suspiciousCount,
		"recent_expenses":  recentExpenses,
		"budgets":          budgetViews,
		"goals":            goalViews,
		"pending_alerts":   pendingAlerts,
	})
}
