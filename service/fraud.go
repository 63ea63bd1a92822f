package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/models"

	"gorm.io/gorm"
)

// Fraud scoring weights. An expense is flagged suspicious when its
// total score reaches the suspicion threshold.
const (
	scoreUnusualAmount   = 30
	scoreUnusualMerchant = 20
	scoreUnusualLocation = 20
	scoreUnusualCategory = 10
	scoreDuplicate       = 35

	suspicionThreshold = 30

	scanDefaultDays      = 7
	anomalyWindowDays    = 180
	anomalyMinExpenses   = 10
	anomalyZThreshold    = 2.0
	duplicateLookback    = 24 * time.Hour
)

// ErrExpenseNotFound is returned when the expense does not exist or
// belongs to another user.
var ErrExpenseNotFound = errors.New("expense not found")

// ErrAlertNotFound is returned when the alert does not exist or belongs
// to another user.
var ErrAlertNotFound = errors.New("fraud alert not found")

// RiskFactor is one contribution to an expense's risk score.
type RiskFactor struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// FraudAnalysis is the full scoring breakdown for a single expense.
type FraudAnalysis struct {
	ExpenseID    uint         `json:"expense_id"`
	IsSuspicious bool         `json:"is_suspicious"`
	RiskScore    int          `json:"risk_score"`
	Severity     string       `json:"severity"`
	RiskFactors  []RiskFactor `json:"risk_factors"`
}

// ScanResult aggregates a batch re-scan of recent expenses.
type ScanResult struct {
	Days            int             `json:"days"`
	TotalAnalyzed   int             `json:"total_analyzed"`
	SuspiciousCount int             `json:"suspicious_count"`
	AvgRiskScore    float64         `json:"avg_risk_score"`
	Analyses        []FraudAnalysis `json:"analyses"`
}

// AnomalyResult holds Z-score outliers over recent expense amounts.
type AnomalyResult struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message,omitempty"`
	Anomalies []models.Expense `json:"anomalies"`
	Stats     *AnomalyStats    `json:"stats,omitempty"`
}

// AnomalyStats describes the amount distribution the outliers were
// measured against.
type AnomalyStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	StdDev float64 `json:"std_dev"`
}

// FraudService scores expenses against the user's behavior profile.
type FraudService struct{}

// NewFraudService creates a fraud detection service.
func NewFraudService() *FraudService {
	return &FraudService{}
}

// AnalyzeExpense scores one expense, persists the derived flags and
// raises a PENDING alert when the score crosses the suspicion threshold.
func (s *FraudService) AnalyzeExpense(userID, expenseID uint) (*FraudAnalysis, error) {
	var expense models.Expense
	err := database.DB.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}

	behavior, err := GetUserBehavior(userID)
	if err != nil {
		return nil, err
	}

	hasDuplicate, err := s.hasRecentDuplicate(&expense)
	if err != nil {
		return nil, err
	}

	factors, score := EvaluateRiskFactors(&expense, behavior, hasDuplicate)

	analysis := &FraudAnalysis{
		ExpenseID:    expense.ID,
		IsSuspicious: score >= suspicionThreshold,
		RiskScore:    score,
		Severity:     SeverityForScore(score),
		RiskFactors:  factors,
	}

	if err := database.DB.Model(&expense).Updates(map[string]interface{}{
		"is_suspicious": analysis.IsSuspicious,
		"risk_score":    analysis.RiskScore,
	}).Error; err != nil {
		return nil, err
	}

	if analysis.IsSuspicious {
		if err := s.createAlert(&expense, analysis); err != nil {
			return nil, err
		}
	}

	return analysis, nil
}

// hasRecentDuplicate looks for another expense with the same amount and
// merchant dated within the prior 24 hours.
func (s *FraudService) hasRecentDuplicate(expense *models.Expense) (bool, error) {
	if expense.Merchant == "" {
		return false, nil
	}
	var count int64
	err := database.DB.Model(&models.Expense{}).
		Where("user_id = ? AND amount = ? AND merchant = ? AND expense_date >= ? AND id <> ?",
			expense.UserID, expense.Amount, expense.Merchant,
			time.Now().Add(-duplicateLookback), expense.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EvaluateRiskFactors scores an expense against the behavior profile.
// The amount check is skipped when the profile has no average yet.
func EvaluateRiskFactors(expense *models.Expense, behavior *models.UserBehavior, hasDuplicate bool) ([]RiskFactor, int) {
	factors := []RiskFactor{}
	score := 0

	if behavior.AvgTransactionAmount != nil && *behavior.AvgTransactionAmount > 0 {
		avg := *behavior.AvgTransactionAmount
		if math.Abs(expense.Amount-avg) > 2*avg {
			score += scoreUnusualAmount
			factors = append(factors, RiskFactor{
				Type:     models.AlertTypeUnusualAmount,
				Severity: models.SeverityHigh,
				Description: fmt.Sprintf("Amount %.2f deviates significantly from your average of %.2f",
					expense.Amount, avg),
			})
		}
	}

	if expense.Merchant != "" && !behavior.HasMerchant(expense.Merchant) {
		score += scoreUnusualMerchant
		factors = append(factors, RiskFactor{
			Type:        models.AlertTypeUnusualMerchant,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("First transaction with merchant %q", expense.Merchant),
		})
	}

	if expense.Location != "" && !behavior.HasLocation(expense.Location) {
		score += scoreUnusualLocation
		factors = append(factors, RiskFactor{
			Type:        models.AlertTypeUnusualLocation,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Transaction from unusual location %q", expense.Location),
		})
	}

	if expense.Category != "" && !behavior.HasCategory(expense.Category) {
		score += scoreUnusualCategory
		factors = append(factors, RiskFactor{
			Type:        models.AlertTypeUnusualCategory,
			Severity:    models.SeverityLow,
			Description: fmt.Sprintf("Unusual spending category %q", expense.Category),
		})
	}

	if hasDuplicate {
		score += scoreDuplicate
		factors = append(factors, RiskFactor{
			Type:        models.AlertTypeDuplicate,
			Severity:    models.SeverityHigh,
			Description: "Possible duplicate: same amount and merchant within 24 hours",
		})
	}

	return factors, score
}

// SeverityForScore maps a risk score to an alert severity.
func SeverityForScore(score int) string {
	switch {
	case score >= 60:
		return models.SeverityCritical
	case score >= 40:
		return models.SeverityHigh
	case score >= 20:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func (s *FraudService) createAlert(expense *models.Expense, analysis *FraudAnalysis) error {
	alertType := models.AlertTypeBehavioralAnomaly
	description := "Multiple behavioral anomalies detected"
	if len(analysis.RiskFactors) > 0 {
		alertType = analysis.RiskFactors[0].Type
		description = analysis.RiskFactors[0].Description
	}

	alert := models.FraudAlert{
		UserID:          expense.UserID,
		ExpenseID:       &expense.ID,
		AlertType:       alertType,
		Severity:        analysis.Severity,
		Description:     description,
		RiskScore:       analysis.RiskScore,
		DetectionMethod: "behavioral_analysis",
		Status:          models.AlertStatusPending,
	}
	return database.DB.Create(&alert).Error
}

// ScanRecent re-analyzes every expense of the trailing window and
// aggregates the results. Each expense is scored from scratch.
func (s *FraudService) ScanRecent(userID uint, days int) (*ScanResult, error) {
	if days <= 0 {
		days = scanDefaultDays
	}
	since := time.Now().AddDate(0, 0, -days)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date >= ?", userID, since).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	result := &ScanResult{
		Days:     days,
		Analyses: []FraudAnalysis{},
	}

	var totalScore int
	for _, e := range expenses {
		analysis, err := s.AnalyzeExpense(userID, e.ID)
		if err != nil {
			return nil, err
		}
		result.Analyses = append(result.Analyses, *analysis)
		totalScore += analysis.RiskScore
		if analysis.IsSuspicious {
			result.SuspiciousCount++
		}
	}

	result.TotalAnalyzed = len(result.Analyses)
	if result.TotalAnalyzed > 0 {
		result.AvgRiskScore = Round2(float64(totalScore) / float64(result.TotalAnalyzed))
	}
	return result, nil
}

// ListAlerts returns the user's alerts, optionally filtered by status,
// newest first.
func (s *FraudService) ListAlerts(userID uint, status string) ([]models.FraudAlert, error) {
	query := database.DB.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var alerts []models.FraudAlert
	if err := query.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// ResolveAlert marks an alert CONFIRMED or FALSE_POSITIVE. Resolving an
// already-resolved alert overwrites the previous resolution.
func (s *FraudService) ResolveAlert(alertID, userID uint, resolution string, confirmed bool) (*models.FraudAlert, error) {
	var alert models.FraudAlert
	err := database.DB.Where("id = ? AND user_id = ?", alertID, userID).First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAlertNotFound
	}
	if err != nil {
		return nil, err
	}

	status := models.AlertStatusFalsePositive
	if confirmed {
		status = models.AlertStatusConfirmed
	}
	now := time.Now()

	if err := database.DB.Model(&alert).Updates(map[string]interface{}{
		"status":      status,
		"resolution":  resolution,
		"resolved_at": now,
	}).Error; err != nil {
		return nil, err
	}

	alert.Status = status
	alert.Resolution = resolution
	alert.ResolvedAt = &now
	return &alert, nil
}

// DetectAnomalies finds statistical outliers among the trailing 180
// days of expense amounts.
func (s *FraudService) DetectAnomalies(userID uint) (*AnomalyResult, error) {
	since := time.Now().AddDate(0, 0, -anomalyWindowDays)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date >= ?", userID, since).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	if len(expenses) < anomalyMinExpenses {
		return &AnomalyResult{
			Success:   false,
			Message:   "not enough transaction history for anomaly detection",
			Anomalies: []models.Expense{},
		}, nil
	}

	amounts := make([]float64, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}

	mean := Average(amounts)
	stdDev := StandardDeviation(amounts)

	anomalies := []models.Expense{}
	if stdDev > 0 {
		for _, e := range expenses {
			if math.Abs(e.Amount-mean)/stdDev > anomalyZThreshold {
				anomalies = append(anomalies, e)
			}
		}
	}

	min, max := amounts[0], amounts[0]
	for _, v := range amounts {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return &AnomalyResult{
		Success:   true,
		Anomalies: anomalies,
		Stats: &AnomalyStats{
			Count:  len(amounts),
			Min:    min,
			Max:    max,
			Avg:    Round2(mean),
			StdDev: Round2(stdDev),
		},
	}, nil
}
