package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/middleware"
	"github.com/normie1221/Sanchay/models"

	"github.com/gin-gonic/gin"
)

// ExportHandler streams raw expense exports.
type ExportHandler struct{}

// NewExportHandler creates an export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

func (h *ExportHandler) queryRange(c *gin.Context) ([]models.Expense, string, string, bool) {
	userID := middleware.GetCurrentUserID(c)

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		BadRequest(c, "start_date and end_date are required")
		return nil, "", "", false
	}

	start, err := parseDate(startStr)
	if err != nil {
		BadRequest(c, "invalid start_date, expected 2006-01-02")
		return nil, "", "", false
	}
	end, err := parseDate(endStr)
	if err != nil {
		BadRequest(c, "invalid end_date, expected 2006-01-02")
		return nil, "", "", false
	}
	end = end.Add(24*time.Hour - time.Second)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date >= ? AND expense_date <= ?", userID, start, end).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load expenses"))
		return nil, "", "", false
	}

	return expenses, startStr, endStr, true
}

// ExportCSV streams expenses as a CSV attachment
// @Summary Export expenses as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "window start (2026-01-01)"
// @Param end_date query string true "window end (2026-12-31)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} Response "invalid request"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	expenses, startStr, endStr, ok := h.queryRange(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// BOM so Excel detects UTF-8.
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"date", "amount", "category", "merchant", "description", "payment_method"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "failed to write CSV")
		return
	}

	for _, expense := range expenses {
		row := []string{
			expense.ExpenseDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", expense.Amount),
			expense.Category,
			expense.Merchant,
			expense.Description,
			expense.PaymentMethod,
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "failed to write CSV")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "failed to write CSV")
		return
	}

	filename := fmt.Sprintf("expenses_%s_%s.csv", startStr, endStr)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON returns expenses with totals as JSON
// @Summary Export expenses as JSON
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "window start (2026-01-01)"
// @Param end_date query string true "window end (2026-12-31)"
// @Success 200 {object} Response "export"
// @Failure 400 {object} Response "invalid request"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	expenses, startStr, endStr, ok := h.queryRange(c)
	if !ok {
		return
	}

	var totalAmount float64
	for _, expense := range expenses {
		totalAmount += expense.Amount
	}

	Success(c, gin.H{
		"start_date":   startStr,
		"end_date":     endStr,
		"total_count":  len(expenses),
		"total_amount": totalAmount,
		"expenses":     expenses,
	})
}
