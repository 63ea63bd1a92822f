package api

import (
	"math"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/models"

	"github.com/gin-gonic/gin"
)

// GoalHandler handles financial goal CRUD.
type GoalHandler struct{}

// NewGoalHandler creates a goal handler.
func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// GoalRequest is the create/update payload.
type GoalRequest struct {
	Name          string  `json:"name" binding:"required,max=100" example:"Emergency fund"`
	Description   string  `json:"description"`
	Category      string  `json:"category" binding:"required" example:"EMERGENCY_FUND"`
	TargetAmount  float64 `json:"target_amount" binding:"required,gt=0" example:"150000"`
	CurrentAmount float64 `json:"current_amount" binding:"gte=0"`
	Deadline      string  `json:"deadline" example:"2026-12-31"`
	Priority      string  `json:"priority" example:"HIGH"`
	Status        string  `json:"status" example:"IN_PROGRESS"`
}

// GoalView decorates a goal with its progress.
type GoalView struct {
	models.FinancialGoal
	Progress  float64 `json:"progress"`
	Remaining float64 `json:"remaining"`
}

func goalView(g models.FinancialGoal) GoalView {
	return GoalView{
		FinancialGoal: g,
		Progress:      math.Min(100, g.Progress()),
		Remaining:     math.Max(0, g.TargetAmount-g.CurrentAmount),
	}
}

func validGoalCategory(category string) bool {
	for _, c := range models.ValidGoalCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// Create adds a goal
// @Summary Create goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GoalRequest true "goal payload"
// @Success 200 {object} Response{data=GoalView} "created"
// @Failure 400 {object} Response "invalid request"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !validGoalCategory(req.Category) {
		BadRequest(c, "invalid goal category")
		return
	}

	var deadline *time.Time
	if req.Deadline != "" {
		d, err := parseDate(req.Deadline)
		if err != nil {
			BadRequest(c, "invalid deadline, expected 2006-01-02")
			return
		}
		deadline = &d
	}

	goal := models.FinancialGoal{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
	}
	if req.Priority != "" {
		goal.Priority = req.Priority
	}
	if req.Status != "" {
		goal.Status = req.Status
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create goal"))
		return
	}

	SuccessWithMessage(c, "created", goalView(goal))
}

// List returns the user's goals
// @Summary List goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param status query string false "filter by status"
// @Success 200 {object} Response{data=[]GoalView} "goals"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var goals []models.FinancialGoal
	if err := query.Order("created_at DESC").Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list goals"))
		return
	}

	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView(g))
	}
	Success(c, views)
}

// Get returns one goal
// @Summary Get goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "goal id"
// @Success 200 {object} Response{data=GoalView} "goal"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var goal models.FinancialGoal
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&goal).Error; err != nil {
		NotFound(c, "goal not found")
		return
	}

	Success(c, goalView(goal))
}

// Update replaces a goal's fields
// @Summary Update goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "goal id"
// @Param request body GoalRequest true "goal payload"
// @Success 200 {object} Response{data=GoalView} "updated"
// @Failure 400 {object} Response "invalid request"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var goal models.FinancialGoal
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&goal).Error; err != nil {
		NotFound(c, "goal not found")
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !validGoalCategory(req.Category) {
		BadRequest(c, "invalid goal category")
		return
	}

	goal.Name = req.Name
	goal.Description = req.Description
	goal.Category = req.Category
	goal.TargetAmount = req.TargetAmount
	goal.CurrentAmount = req.CurrentAmount
	if req.Deadline != "" {
		d, err := parseDate(req.Deadline)
		if err != nil {
			BadRequest(c, "invalid deadline, expected 2006-01-02")
			return
		}
		goal.Deadline = &d
	}
	if req.Priority != "" {
		goal.Priority = req.Priority
	}
	if req.Status != "" {
		goal.Status = req.Status
	}

	// Reaching the target completes the goal automatically.
	if goal.CurrentAmount >= goal.TargetAmount && goal.Status == models.GoalStatusInProgress {
		goal.Status = models.GoalStatusCompleted
	}

	if err := database.DB.Save(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update goal"))
		return
	}

	SuccessWithMessage(c, "updated", goalView(goal))
}

// Delete removes a goal
// @Summary Delete goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "goal id"
// @Success 200 {object} Response "deleted"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.FinancialGoal{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "failed to delete goal"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "goal not found")
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
