package api

import (
	"strconv"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/models"

	"github.com/gin-gonic/gin"
)

// IncomeHandler handles income CRUD.
type IncomeHandler struct{}

// NewIncomeHandler creates an income handler.
func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

// IncomeRequest is the create/update payload.
type IncomeRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"50000"`
	Source      string  `json:"source" binding:"required" example:"Acme Corp"`
	Category    string  `json:"category" binding:"required" example:"SALARY"`
	Frequency   string  `json:"frequency" binding:"required" example:"MONTHLY"`
	Description string  `json:"description"`
	Date        string  `json:"date" binding:"required" example:"2026-01-31"`
	IsRecurring bool    `json:"is_recurring"`
}

func validIncomeCategory(category string) bool {
	for _, c := range models.ValidIncomeCategories() {
		if c == category {
			return true
		}
	}
	return false
}

func validFrequency(frequency string) bool {
	for _, f := range models.ValidFrequencies() {
		if f == frequency {
			return true
		}
	}
	return false
}

// Create records a new income
// @Summary Create income
// @Tags incomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IncomeRequest true "income payload"
// @Success 200 {object} Response{data=models.Income} "created"
// @Failure 400 {object} Response "invalid request"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !validIncomeCategory(req.Category) {
		BadRequest(c, "invalid income category")
		return
	}
	if !validFrequency(req.Frequency) {
		BadRequest(c, "invalid frequency")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		BadRequest(c, "invalid date, expected 2006-01-02")
		return
	}

	income := models.Income{
		UserID:      userID,
		Amount:      req.Amount,
		Source:      req.Source,
		Category:    req.Category,
		Frequency:   req.Frequency,
		Description: req.Description,
		IncomeDate:  date,
		IsRecurring: req.IsRecurring,
	}

	if err := database.DB.Create(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create income"))
		return
	}

	SuccessWithMessage(c, "created", income)
}

// List returns the user's incomes with filters and pagination
// @Summary List incomes
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Param category query string false "filter by category"
// @Param start_date query string false "window start (2006-01-02)"
// @Param end_date query string false "window end (2006-01-02)"
// @Param page query int false "page, starts at 1"
// @Param page_size query int false "page size, default 20"
// @Success 200 {object} Response{data=PageResponse} "incomes"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Model(&models.Income{}).Where("user_id = ?", userID)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			BadRequest(c, "invalid start_date, expected 2006-01-02")
			return
		}
		query = query.Where("income_date >= ?", start)
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			BadRequest(c, "invalid end_date, expected 2006-01-02")
			return
		}
		query = query.Where("income_date <= ?", end.Add(24*time.Hour-time.Second))
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to count incomes"))
		return
	}

	var incomes []models.Income
	if err := query.
		Order("income_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list incomes"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     incomes,
	})
}

// Get returns one income
// @Summary Get income
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "income id"
// @Success 200 {object} Response{data=models.Income} "income"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&income).Error; err != nil {
		NotFound(c, "income not found")
		return
	}

	Success(c, income)
}

// Update replaces an income's fields
// @Summary Update income
// @Tags incomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "income id"
// @Param request body IncomeRequest true "income payload"
// @Success 200 {object} Response{data=models.Income} "updated"
// @Failure 400 {object} Response "invalid request"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&income).Error; err != nil {
		NotFound(c, "income not found")
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !validIncomeCategory(req.Category) {
		BadRequest(c, "invalid income category")
		return
	}
	if !validFrequency(req.Frequency) {
		BadRequest(c, "invalid frequency")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		BadRequest(c, "invalid date, expected 2006-01-02")
		return
	}

	income.Amount = req.Amount
	income.Source = req.Source
	income.Category = req.Category
	income.Frequency = req.Frequency
	income.Description = req.Description
	income.IncomeDate = date
	income.IsRecurring = req.IsRecurring

	if err := database.DB.Save(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update income"))
		return
	}

	SuccessWithMessage(c, "updated", income)
}

// Delete removes an income
// @Summary Delete income
// @Tags incomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "income id"
// @Success 200 {object} Response "deleted"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Income{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "failed to delete income"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "income not found")
		return
	}

	SuccessWithMessage(c, "deleted", nil)
}
