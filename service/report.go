package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/models"

	"github.com/xuri/excelize/v2"
)

// CategoryBreakdown is one category's share of a report window.
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Average    float64 `json:"average"`
	Percentage float64 `json:"percentage"`
}

// BudgetUtilization is a budget's standing within a report month.
type BudgetUtilization struct {
	Category    string  `json:"category"`
	Limit       float64 `json:"limit"`
	Spent       float64 `json:"spent"`
	Utilization float64 `json:"utilization"`
	OverBudget  bool    `json:"over_budget"`
}

// MonthlySummary is the full picture of one calendar month.
type MonthlySummary struct {
	Year               int                 `json:"year"`
	Month              int                 `json:"month"`
	StartDate          time.Time           `json:"start_date"`
	EndDate            time.Time           `json:"end_date"`
	TotalIncome        float64             `json:"total_income"`
	TotalExpenses      float64             `json:"total_expenses"`
	Net                float64             `json:"net"`
	SavingsRate        float64             `json:"savings_rate"`
	IncomeByCategory   []CategoryBreakdown `json:"income_by_category"`
	ExpensesByCategory []CategoryBreakdown `json:"expenses_by_category"`
	Budgets            []BudgetUtilization `json:"budgets"`
	TopExpenses        []models.Expense    `json:"top_expenses"`
}

// ExpenseAnalysis is the per-category breakdown of a date range.
type ExpenseAnalysis struct {
	StartDate        time.Time           `json:"start_date"`
	EndDate          time.Time           `json:"end_date"`
	TotalSpent       float64             `json:"total_spent"`
	TransactionCount int                 `json:"transaction_count"`
	AvgTransaction   float64             `json:"avg_transaction"`
	Categories       []CategoryBreakdown `json:"categories"`
}

// ReportService builds report data and exports report files.
type ReportService struct {
	dir string
}

// NewReportService creates a report service writing files under dir.
func NewReportService(dir string) *ReportService {
	return &ReportService{dir: dir}
}

// MonthlySummary summarizes one calendar month.
func (s *ReportService) MonthlySummary(userID uint, year, month int) (*MonthlySummary, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date BETWEEN ? AND ?", userID, start, end).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	var incomes []models.Income
	if err := database.DB.
		Where("user_id = ? AND income_date BETWEEN ? AND ?", userID, start, end).
		Find(&incomes).Error; err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := database.DB.
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, end, start).
		Find(&budgets).Error; err != nil {
		return nil, err
	}

	var totalExpenses float64
	for _, e := range expenses {
		totalExpenses += e.Amount
	}
	var totalIncome float64
	incomeAmounts := map[string][]float64{}
	incomeOrder := []string{}
	for _, in := range incomes {
		totalIncome += in.Amount
		if _, ok := incomeAmounts[in.Category]; !ok {
			incomeOrder = append(incomeOrder, in.Category)
		}
		incomeAmounts[in.Category] = append(incomeAmounts[in.Category], in.Amount)
	}

	incomeBreakdown := make([]CategoryBreakdown, 0, len(incomeOrder))
	for _, c := range incomeOrder {
		amounts := incomeAmounts[c]
		total := Sum(amounts)
		incomeBreakdown = append(incomeBreakdown, CategoryBreakdown{
			Category:   c,
			Total:      Round2(total),
			Count:      len(amounts),
			Average:    Round2(Average(amounts)),
			Percentage: Round2(Percentage(total, totalIncome)),
		})
	}
	sort.SliceStable(incomeBreakdown, func(i, j int) bool {
		return incomeBreakdown[i].Total > incomeBreakdown[j].Total
	})

	budgetStatus := make([]BudgetUtilization, 0, len(budgets))
	for _, b := range budgets {
		budgetStatus = append(budgetStatus, BudgetUtilization{
			Category:    b.Category,
			Limit:       b.Limit,
			Spent:       b.Spent,
			Utilization: Round2(b.Utilization()),
			OverBudget:  b.IsOverBudget(),
		})
	}

	top := make([]models.Expense, len(expenses))
	copy(top, expenses)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Amount > top[j].Amount })
	if len(top) > 10 {
		top = top[:10]
	}

	savingsRate := 0.0
	if totalIncome > 0 {
		savingsRate = (totalIncome - totalExpenses) / totalIncome * 100
	}

	return &MonthlySummary{
		Year:               year,
		Month:              month,
		StartDate:          start,
		EndDate:            end,
		TotalIncome:        Round2(totalIncome),
		TotalExpenses:      Round2(totalExpenses),
		Net:                Round2(totalIncome - totalExpenses),
		SavingsRate:        Round2(savingsRate),
		IncomeByCategory:   incomeBreakdown,
		ExpensesByCategory: expenseBreakdown(expenses),
		Budgets:            budgetStatus,
		TopExpenses:        top,
	}, nil
}

// ExpenseAnalysis breaks down spending per category over a date range.
func (s *ReportService) ExpenseAnalysis(userID uint, start, end time.Time) (*ExpenseAnalysis, error) {
	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date BETWEEN ? AND ?", userID, start, end).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	amounts := make([]float64, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}

	return &ExpenseAnalysis{
		StartDate:        start,
		EndDate:          end,
		TotalSpent:       Round2(Sum(amounts)),
		TransactionCount: len(expenses),
		AvgTransaction:   Round2(Average(amounts)),
		Categories:       expenseBreakdown(expenses),
	}, nil
}

// expenseBreakdown aggregates expenses per category, largest first.
func expenseBreakdown(expenses []models.Expense) []CategoryBreakdown {
	order := []string{}
	byCategory := map[string][]float64{}
	var grand float64
	for _, e := range expenses {
		if _, ok := byCategory[e.Category]; !ok {
			order = append(order, e.Category)
		}
		byCategory[e.Category] = append(byCategory[e.Category], e.Amount)
		grand += e.Amount
	}

	breakdown := make([]CategoryBreakdown, 0, len(order))
	for _, c := range order {
		amounts := byCategory[c]
		total := Sum(amounts)
		breakdown = append(breakdown, CategoryBreakdown{
			Category:   c,
			Total:      Round2(total),
			Count:      len(amounts),
			Average:    Round2(Average(amounts)),
			Percentage: Round2(Percentage(total, grand)),
		})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total > breakdown[j].Total
	})
	return breakdown
}

// Export writes a report file under the reports directory and records a
// Report row pointing at it.
func (s *ReportService) Export(userID uint, reportType, format string, start, end time.Time) (*models.Report, error) {
	var headers []string
	var rows [][]string
	var title string

	switch reportType {
	case models.ReportTypeMonthlySummary:
		summary, err := s.MonthlySummary(userID, start.Year(), int(start.Month()))
		if err != nil {
			return nil, err
		}
		title = fmt.Sprintf("Monthly Summary %d-%02d", summary.Year, summary.Month)
		headers = []string{"metric", "value"}
		rows = summaryRows(summary)
	case models.ReportTypeExpenseAnalysis:
		var expenses []models.Expense
		if err := database.DB.
			Where("user_id = ? AND expense_date BETWEEN ? AND ?", userID, start, end).
			Order("expense_date DESC").
			Find(&expenses).Error; err != nil {
			return nil, err
		}
		title = fmt.Sprintf("Expense Analysis %s to %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
		headers = []string{"date", "amount", "category", "merchant", "description", "payment_method"}
		rows = expenseRows(expenses)
	default:
		return nil, fmt.Errorf("unknown report type %q", reportType)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}

	ext := "csv"
	if format == models.ReportFormatXLSX {
		ext = "xlsx"
	}
	filename := fmt.Sprintf("%d_%s_%d.%s",
		userID, strings.ToLower(reportType), time.Now().UnixNano(), ext)
	path := filepath.Join(s.dir, filename)

	var err error
	if format == models.ReportFormatXLSX {
		err = writeXLSX(path, title, headers, rows)
	} else {
		err = writeCSV(path, headers, rows)
	}
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	report := models.Report{
		UserID:      userID,
		Type:        reportType,
		Title:       title,
		Format:      format,
		StartDate:   start,
		EndDate:     end,
		FileURL:     "/reports/" + filename,
		FileSize:    info.Size(),
		GeneratedAt: time.Now(),
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports returns the user's exported reports, newest first.
func (s *ReportService) ListReports(userID uint) ([]models.Report, error) {
	var reports []models.Report
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func summaryRows(summary *MonthlySummary) [][]string {
	rows := [][]string{
		{"total_income", fmt.Sprintf("%.2f", summary.TotalIncome)},
		{"total_expenses", fmt.Sprintf("%.2f", summary.TotalExpenses)},
		{"net", fmt.Sprintf("%.2f", summary.Net)},
		{"savings_rate", fmt.Sprintf("%.2f", summary.SavingsRate)},
	}
	for _, c := range summary.ExpensesByCategory {
		rows = append(rows, []string{"expenses: " + c.Category, fmt.Sprintf("%.2f", c.Total)})
	}
	for _, c := range summary.IncomeByCategory {
		rows = append(rows, []string{"income: " + c.Category, fmt.Sprintf("%.2f", c.Total)})
	}
	for _, b := range summary.Budgets {
		rows = append(rows, []string{"budget: " + b.Category, fmt.Sprintf("%.2f%%", b.Utilization)})
	}
	return rows
}

func expenseRows(expenses []models.Expense) [][]string {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.ExpenseDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", e.Amount),
			e.Category,
			e.Merchant,
			e.Description,
			e.PaymentMethod,
		})
	}
	return rows
}

func writeCSV(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// BOM so Excel detects UTF-8.
	if _, err := f.WriteString("\xEF\xBB\xBF"); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path, title string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	lastCol := string(rune('A' + len(headers) - 1))
	f.SetColWidth(sheet, "A", lastCol, 20)

	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", lastCol+"1")
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	for i, h := range headers {
		cell := fmt.Sprintf("%c2", 'A'+i)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for r, row := range rows {
		for c, v := range row {
			f.SetCellValue(sheet, fmt.Sprintf("%c%d", 'A'+c, r+3), v)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", r+3), fmt.Sprintf("%s%d", lastCol, r+3), dataStyle)
	}

	return f.SaveAs(path)
}
