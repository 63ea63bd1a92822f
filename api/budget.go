package api

import (
	"strconv"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/models"

	"github.com/gin-gonic/gin"
)

// BudgetHandler handles budget CRUD.
type BudgetHandler struct{}

// NewBudgetHandler creates a budget handler.
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// BudgetRequest is the create/update payload.
type BudgetRequest struct {
	Category       string  `json:"category" binding:"required" example:"Food"`
	Limit          float64 `json:"limit" binding:"required,gt=0" example:"8000"`
	Period         string  `json:"period" binding:"required" example:"MONTHLY"`
	StartDate      string  `json:"start_date" binding:"required" example:"2026-01-01"`
	EndDate        string  `json:"end_date" binding:"required" example:"2026-01-31"`
	AlertThreshold float64 `json:"alert_threshold" example:"80"`
}

// BudgetView decorates a budget with its derived standing.
type BudgetView struct {
	models.Budget
	Utilization float64 `json:"utilization"`
	Remaining   float64 `json:"remaining"`
	OverBudget  bool    `json:"over_budget"`
	ShouldAlert bool    `json:"should_alert"`
}

func budgetView(b models.Budget) BudgetView {
	return BudgetView{
		Budget:      b,
		Utilization: b.Utilization(),
		Remaining:   b.Limit - b.Spent,
		OverBudget:  b.IsOverBudget(),
		ShouldAlert: b.ShouldAlert(),
	}
}

func validPeriod(period string) bool {
	for _, p := range models.ValidPeriods() {
		if p == period {
			return true
		}
	}
	return false
}

// Create adds a budget
// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "budget payload"
// @Success 200 {object} Response{data=BudgetView} "created"
// @Failure 400 {object} Response "invalid request"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !validPeriod(req.Period) {
		BadRequest(c, "invalid period")
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		BadRequest(c, "invalid start_date, expected 2006-01-02")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		BadRequest(c, "invalid end_date, expected 2006-01-02")
		return
	}
	end = end.Add(24*time.Hour - time.Second)
	if end.Before(start) {
		BadRequest(c, "end_date is before start_date")
		return
	}

	threshold := req.AlertThreshold
	if threshold <= 0 || threshold > 100 {
		threshold = 80
	}

	budget := models.Budget{
		UserID:         userID,
		Category:       req.Category,
		Limit:          req.Limit,
		Period:         req.Period,
		StartDate:      start,
		EndDate:        end,
		AlertThreshold: threshold,
	}

	if err := database.DB.Create(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create budget"))
		return
	}

	SuccessWithMessage(c, "created", budgetView(budget))
}

// List returns the user's budgets
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param active query bool false "only budgets whose window covers today"
// @Success 200 {object} Response{data=[]BudgetView} "budgets"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if activeStr := c.Query("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			BadRequest(c, "invalid active flag")
			return
		}
		if active {
			now := time.Now()
			query = query.Where("start_date <= ? AND end_date >= ?", now, now)
		}
	}

	var budgets []models.Budget
	if err := query.Order("start_date DESC").Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list budgets"))
		return
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		views = append(views, budgetView(b))
	}
	Success(c, views)
}

// Get returns one budget
// @Summary Get budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Success 200 {object} Response{data=BudgetView} "budget"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&budget).Error; err != nil {
		NotFound(c, "budget not found")
		return
	}

	Success(c, budgetView(budget))
}

// Update replaces a budget's settings. Spent is preserved; it belongs
// to the expense roll-up, not the client.
// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Param request body BudgetRequest true "budget payload"
// @Success 200 {object} Response{data=BudgetView} "updated"
// @Failure 400 {object} Response "invalid request"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&budget).Error; err != nil {
		NotFound(c, "budget not found")
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !validPeriod(req.Period) {
		BadRequest(c, "invalid period")
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		BadRequest(c, "invalid start_date, expected 2006-01-02")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		BadRequest(c, "invalid end_date, expected 2006-01-02")
		return
	}
	end = end.Add(24*time.Hour - time.Second)

	budget.Category = req.Category
	budget.Limit = req.Limit
	budget.Period = req.Period
	budget.StartDate = start
	budget.EndDate = end
	if req.AlertThreshold > 0 && req.AlertThreshold <= 100 {
		budget.AlertThreshold = req.AlertThreshold
	}

	if err := database.DB.Save(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update budget"))
		return
	}

	SuccessWithMessage(c, "updated", budgetView(budget))
}

// Delete removes a budget
// @Summary Delete budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Success 200 {object} Response "deleted"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Budget{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "failed to delete budget"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "budget not found")
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
