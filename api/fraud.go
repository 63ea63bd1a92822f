package api

import (
	"errors"
	"strconv"

	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/service"

	"github.com/gin-gonic/gin"
)

// FraudHandler exposes fraud analysis and alert management.
type FraudHandler struct {
	fraud *service.FraudService
}

// NewFraudHandler creates a fraud handler.
func NewFraudHandler() *FraudHandler {
	return &FraudHandler{fraud: service.NewFraudService()}
}

// Analyze scores one expense on demand
// @Summary Analyze expense
// @Description Run fraud analysis for a single expense and persist the result
// @Tags fraud
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response{data=service.FraudAnalysis} "analysis"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/fraud/analyze/{id} [post]
func (h *FraudHandler) Analyze(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	expenseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid expense id")
		return
	}

	analysis, err := h.fraud.AnalyzeExpense(userID, uint(expenseID))
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			NotFound(c, "expense not found")
			return
		}
		InternalError(c, SafeErrorMessage(err, "fraud analysis failed"))
		return
	}

	Success(c, analysis)
}

// ScanRequest selects the scan window.
type ScanRequest struct {
	Days int `json:"days" example:"7"`
}

// Scan re-analyzes recent expenses
// @Summary Scan recent expenses
// @Description Re-run fraud analysis over the trailing window, default 7 days
// @Tags fraud
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScanRequest false "scan window"
// @Success 200 {object} Response{data=service.ScanResult} "scan result"
// @Router /api/v1/fraud/scan [post]
func (h *FraudHandler) Scan(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	// The body is optional, an empty one means the default window.
	var req ScanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "invalid request: "+err.Error())
			return
		}
	}

	result, err := h.fraud.ScanRecent(userID, req.Days)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "fraud scan failed"))
		return
	}

	Success(c, result)
}

// ListAlerts returns the user's fraud alerts
// @Summary List fraud alerts
// @Tags fraud
// @Produce json
// @Security BearerAuth
// @Param status query string false "filter by status (PENDING, CONFIRMED, FALSE_POSITIVE)"
// @Success 200 {object} Response{data=[]models.FraudAlert} "alerts"
// @Router /api/v1/fraud/alerts [get]
func (h *FraudHandler) ListAlerts(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	alerts, err := h.fraud.ListAlerts(userID, c.Query("status"))
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list alerts"))
		return
	}

	Success(c, alerts)
}

// ResolveAlertRequest is the resolution payload.
type ResolveAlertRequest struct {
	Confirmed  bool   `json:"confirmed"`
	Resolution string `json:"resolution" binding:"required,max=255" example:"checked with the cardholder"`
}

// ResolveAlert closes an alert as confirmed fraud or a false positive
// @Summary Resolve fraud alert
// @Tags fraud
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "alert id"
// @Param request body ResolveAlertRequest true "resolution payload"
// @Success 200 {object} Response{data=models.FraudAlert} "resolved"
// @Failure 404 {object} Response "not found"
// @Router /api/v1/fraud/alerts/{id}/resolve [post]
func (h *FraudHandler) ResolveAlert(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	alertID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid alert id")
		return
	}

	var req ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	alert, err := h.fraud.ResolveAlert(uint(alertID), userID, req.Resolution, req.Confirmed)
	if err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			NotFound(c, "alert not found")
			return
		}
		InternalError(c, SafeErrorMessage(err, "failed to resolve alert"))
		return
	}

	SuccessWithMessage(c, "resolved", alert)
}
