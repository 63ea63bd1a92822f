package api

import (
	"log"
	"strconv"
	"time"

	"github.com/normie1221/Sanchay/config"
	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/models"
	"github.com/normie1221/Sanchay/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense CRUD. Creating an expense kicks off
// fraud analysis in the background and rolls the new amount into any
// matching budgets.
type ExpenseHandler struct {
	fraud *service.FraudService
	email *service.EmailService
}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler(cfg *config.Config) *ExpenseHandler {
	return &ExpenseHandler{
		fraud: service.NewFraudService(),
		email: service.NewEmailService(&cfg.Email),
	}
}

// ExpenseRequest is the create/update payload.
type ExpenseRequest struct {
	Amount        float64  `json:"amount" binding:"required,gt=0" example:"499.99"`
	Category      string   `json:"category" binding:"required" example:"Food"`
	Description   string   `json:"description" example:"weekly groceries"`
	Merchant      string   `json:"merchant" example:"Grocery Mart"`
	PaymentMethod string   `json:"payment_method" example:"upi"`
	Location      string   `json:"location" example:"Mumbai"`
	Tags          []string `json:"tags"`
	Date          string   `json:"date" binding:"required" example:"2026-01-15"`
	IsRecurring   bool     `json:"is_recurring"`
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Create records a new expense
// @Summary Create expense
// @Description Record an expense. Fraud analysis runs in the background.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "expense payload"
// @Success 200 {object} Response{data=models.Expense} "created"
// @Failure 400 {object} Response "invalid request"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		BadRequest(c, "invalid date, expected 2006-01-02")
		return
	}

	expense := models.Expense{
		UserID:        userID,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		Merchant:      req.Merchant,
		PaymentMethod: req.PaymentMethod,
		Location:      req.Location,
		Tags:          req.Tags,
		ExpenseDate:   date,
		IsRecurring:   req.IsRecurring,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create expense"))
		return
	}

	h.applyToBudgets(userID, expense.Category, expense.ExpenseDate, expense.Amount)

	// Fraud analysis must not block or fail the request.
	go func(userID, expenseID uint) {
		if _, err := h.fraud.AnalyzeExpense(userID, expenseID); err != nil {
			log.Printf("background fraud analysis for expense %d: %v", expenseID, err)
		}
	}(userID, expense.ID)

	SuccessWithMessage(c, "created", expense)
}

// List returns the user's expenses with filters and pagination
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param category query string false "filter by category"
// @Param suspicious query bool false "only flagged expenses"
// @Param start_date query string false "window start (2006-01-02)"
// @Param end_date query string false "window end (2006-01-02)"
// @Param page query int false "page, starts at 1"
// @Param page_size query int false "page size, default 20"
// @Success 200 {object} Response{data=PageResponse} "expenses"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if suspicious := c.Query("suspicious"); suspicious != "" {
		flag, err := strconv.ParseBool(suspicious)
		if err != nil {
			BadRequest(c, "invalid suspicious flag")
			return
		}
		query = query.Where("is_suspicious = ?", flag)
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			BadRequest(c, "invalid start_date, expected 2006-01-02")
			return
		}
		query = query.Where("expense_date >= ?", start)
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			BadRequest(c, "invalid end_date, expected 2006-01-02")
			return
		}
		query = query.Where("expense_date <= ?", end.Add(24*time.Hour-time.Second))
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
		InternalError(c, SafeErrorMessage(err, "failed to count expenses"))
		return
	}

	var expenses []models.Expense
	if err := query.
		Order("expense_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list expenses"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     expenses,
	})
}

// Get returns one expense
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response{data=models.Expense} "expense"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	Success(c, expense)
}

// Update replaces an expense's fields
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Param request body ExpenseRequest true "expense payload"
// @Success 200 {object} Response{data=models.Expense} "updated"
// @Failure 400 {object} Response "invalid request"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		BadRequest(c, "invalid date, expected 2006-01-02")
		return
	}

	// Back the old amount out of its budgets before applying the new
	// category and amount.
	h.applyToBudgets(userID, expense.Category, expense.ExpenseDate, -expense.Amount)

	expense.Amount = req.Amount
	expense.Category = req.Category
	expense.Description = req.Description
	expense.Merchant = req.Merchant
	expense.PaymentMethod = req.PaymentMethod
	expense.Location = req.Location
	expense.Tags = req.Tags
	expense.ExpenseDate = date
	expense.IsRecurring = req.IsRecurring

	if err := database.DB.Save(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to update expense"))
		return
	}

	h.applyToBudgets(userID, expense.Category, expense.ExpenseDate, expense.Amount)

	SuccessWithMessage(c, "updated", expense)
}

// Delete removes an expense
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response "deleted"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&expense).Error; err != nil {
		NotFound(c, "expense not found")
		return
	}

	if err := database.DB.Delete(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete expense"))
		return
	}

	h.applyToBudgets(userID, expense.Category, expense.ExpenseDate, -expense.Amount)

	SuccessWithMessage(c, "deleted", nil)
}

// applyToBudgets rolls delta into the spent total of every budget
// matching the category and date, and mails an alert when a budget
// newly crosses its threshold. Budget bookkeeping failures are logged,
// never surfaced: the expense write already succeeded.
func (h *ExpenseHandler) applyToBudgets(userID uint, category string, date time.Time, delta float64) {
	var budgets []models.Budget
	if err := database.DB.
		Where("user_id = ? AND category = ? AND start_date <= ? AND end_date >= ?",
			userID, category, date, date).
		Find(&budgets).Error; err != nil {
		log.Printf("budget rollup for user %d: %v", userID, err)
		return
	}

	for _, budget := range budgets {
		wasAlerting := budget.ShouldAlert()
		budget.Spent += delta
		if budget.Spent < 0 {
			budget.Spent = 0
		}
		if err := database.DB.Model(&budget).Update("spent", budget.Spent).Error; err != nil {
			log.Printf("budget rollup for budget %d: %v", budget.ID, err)
			continue
		}

		if !wasAlerting && budget.ShouldAlert() && h.email.Enabled() {
			go h.sendBudgetAlert(userID, budget)
		}
	}
}

func (h *ExpenseHandler) sendBudgetAlert(userID uint, budget models.Budget) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		log.Printf("budget alert: load user %d: %v", userID, err)
		return
	}
	if err := h.email.SendBudgetAlert(user.Email, user.Username, budget); err != nil {
		log.Printf("budget alert for budget %d: %v", budget.ID, err)
	}
}
