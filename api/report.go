package api

import (
	"strconv"
	"time"

	"github.com/normie1221/Sanchay/config"
	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/models"
	"github.com/normie1221/Sanchay/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler builds report data and exports report files.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a report handler.
func NewReportHandler(cfg *config.Config) *ReportHandler {
	return &ReportHandler{reports: service.NewReportService(cfg.Reports.Dir)}
}

// List returns the user's exported reports
// @Summary List reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Report} "reports"
// @Router /api/v1/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	reports, err := h.reports.ListReports(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to list reports"))
		return
	}

	Success(c, reports)
}

// GenerateRequest selects the report to export.
type GenerateRequest struct {
	Type      string `json:"type" binding:"required" example:"MONTHLY_SUMMARY"`
	Format    string `json:"format" example:"CSV"`
	Year      int    `json:"year" example:"2026"`
	Month     int    `json:"month" example:"1"`
	StartDate string `json:"start_date" example:"2026-01-01"`
	EndDate   string `json:"end_date" example:"2026-03-31"`
}

// Generate exports a report file
// @Summary Generate report
// @Description Write a CSV or XLSX report file and record it
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateRequest true "report selection"
// @Success 200 {object} Response{data=models.Report} "generated"
// @Failure 400 {object} Response "invalid request"
// @Router /api/v1/reports [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	format := req.Format
	if format == "" {
		format = models.ReportFormatCSV
	}
	if format != models.ReportFormatCSV && format != models.ReportFormatXLSX {
		BadRequest(c, "invalid format, expected CSV or XLSX")
		return
	}

	var start, end time.Time
	switch req.Type {
	case models.ReportTypeMonthlySummary:
		year, month := req.Year, req.Month
		if year == 0 || month == 0 {
			now := time.Now()
			year, month = now.Year(), int(now.Month())
		}
		if month < 1 || month > 12 {
			BadRequest(c, "invalid month")
			return
		}
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		end = start.AddDate(0, 1, 0).Add(-time.Second)
	case models.ReportTypeExpenseAnalysis:
		if req.StartDate == "" || req.EndDate == "" {
			BadRequest(c, "start_date and end_date are required")
			return
		}
		var err error
		start, err = parseDate(req.StartDate)
		if err != nil {
			BadRequest(c, "invalid start_date, expected 2006-01-02")
			return
		}
		end, err = parseDate(req.EndDate)
		if err != nil {
			BadRequest(c, "invalid end_date, expected 2006-01-02")
			return
		}
		end = end.Add(24*time.Hour - time.Second)
	default:
		BadRequest(c, "invalid report type")
		return
	}

	report, err := h.reports.Export(userID, req.Type, format, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to generate report"))
		return
	}

	SuccessWithMessage(c, "report generated", report)
}

// MonthlySummary returns one month's summary as JSON
// @Summary Monthly summary
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param year query int false "year, default current"
// @Param month query int false "month, default current"
// @Success 200 {object} Response{data=service.MonthlySummary} "summary"
// @Router /api/v1/reports/monthly-summary [get]
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if month < 1 || month > 12 {
		BadRequest(c, "invalid month")
		return
	}

	summary, err := h.reports.MonthlySummary(userID, year, month)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build summary"))
		return
	}

	Success(c, summary)
}

// ExpenseAnalysis returns a per-category breakdown of a date range
// @Summary Expense analysis
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "window start (2006-01-02)"
// @Param end_date query string true "window end (2006-01-02)"
// @Success 200 {object} Response{data=service.ExpenseAnalysis} "analysis"
// @Failure 400 {object} Response "invalid request"
// @Router /api/v1/reports/expense-analysis [get]
func (h *ReportHandler) ExpenseAnalysis(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	startStr, endStr := c.Query("start_date"), c.Query("end_date")
	if startStr == "" || endStr == "" {
		BadRequest(c, "start_date and end_date are required")
		return
	}
	start, err := parseDate(startStr)
	if err != nil {
		BadRequest(c, "invalid start_date, expected 2006-01-02")
		return
	}
	end, err := parseDate(endStr)
	if err != nil {
		BadRequest(c, "invalid end_date, expected 2006-01-02")
		return
	}
	end = end.Add(24*time.Hour - time.Second)

	analysis, err := h.reports.ExpenseAnalysis(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to build analysis"))
		return
	}

	Success(c, analysis)
}
