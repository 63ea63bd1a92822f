package service

import (
	"sort"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/models"
)

const (
	recommendationWindowDays = 180

	// Coefficient-of-variation cutoffs for recommendation confidence.
	cvLowConfidence    = 0.5
	cvMediumConfidence = 0.3
)

// Recommendation confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// BudgetRecommendation is a suggested per-category spending limit
// derived from spending history.
type BudgetRecommendation struct {
	Category         string  `json:"category"`
	RecommendedLimit float64 `json:"recommended_limit"`
	AvgSpending      float64 `json:"avg_spending"`
	TotalSpending    float64 `json:"total_spending"`
	TransactionCount int     `json:"transaction_count"`
	Confidence       string  `json:"confidence"`
}

// RecommendationResult wraps the recommendation list with a success
// flag so callers can tell "no history" from an empty set.
type RecommendationResult struct {
	Success         bool                   `json:"success"`
	Message         string                 `json:"message,omitempty"`
	Period          string                 `json:"period,omitempty"`
	Recommendations []BudgetRecommendation `json:"recommendations"`
}

// BudgetAdjustment is a suggested change to an existing budget.
type BudgetAdjustment struct {
	BudgetID       uint    `json:"budget_id"`
	Category       string  `json:"category"`
	CurrentLimit   float64 `json:"current_limit"`
	SuggestedLimit float64 `json:"suggested_limit"`
	Utilization    float64 `json:"utilization"`
	Reason         string  `json:"reason"`
}

// BudgetPlanner derives budget limits from spending history.
type BudgetPlanner struct{}

// NewBudgetPlanner creates a budget planning service.
func NewBudgetPlanner() *BudgetPlanner {
	return &BudgetPlanner{}
}

// GenerateRecommendations suggests a limit per spending category from
// the trailing 180 days. The limit is mean plus one standard deviation,
// leaving headroom for a typical month's variance.
func (p *BudgetPlanner) GenerateRecommendations(userID uint, period string) (*RecommendationResult, error) {
	if period == "" {
		period = models.PeriodMonthly
	}
	since := time.Now().AddDate(0, 0, -recommendationWindowDays)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date >= ?", userID, since).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	if len(expenses) == 0 {
		return &RecommendationResult{
			Success:         false,
			Message:         "not enough expense history to recommend budgets",
			Recommendations: []BudgetRecommendation{},
		}, nil
	}

	return &RecommendationResult{
		Success:         true,
		Period:          period,
		Recommendations: RecommendLimits(expenses),
	}, nil
}

// RecommendLimits computes per-category recommendations from a set of
// expenses, sorted by recommended limit descending.
func RecommendLimits(expenses []models.Expense) []BudgetRecommendation {
	order := []string{}
	byCategory := map[string][]float64{}
	for _, e := range expenses {
		if _, ok := byCategory[e.Category]; !ok {
			order = append(order, e.Category)
		}
		byCategory[e.Category] = append(byCategory[e.Category], e.Amount)
	}

	recs := make([]BudgetRecommendation, 0, len(order))
	for _, category := range order {
		amounts := byCategory[category]
		mean := Average(amounts)
		stdDev := StandardDeviation(amounts)

		recs = append(recs, BudgetRecommendation{
			Category:         category,
			RecommendedLimit: Round2(mean + stdDev),
			AvgSpending:      Round2(mean),
			TotalSpending:    Round2(Sum(amounts)),
			TransactionCount: len(amounts),
			Confidence:       confidenceFor(mean, stdDev),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RecommendedLimit > recs[j].RecommendedLimit
	})
	return recs
}

// confidenceFor grades a recommendation by the coefficient of
// variation. A zero mean cannot be graded and gets low confidence.
func confidenceFor(mean, stdDev float64) string {
	if mean == 0 {
		return ConfidenceLow
	}
	cv := stdDev / mean
	switch {
	case cv > cvLowConfidence:
		return ConfidenceLow
	case cv > cvMediumConfidence:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

// CreateAIBudgets materializes the current recommendations as monthly
// budgets for the current calendar month.
func (p *BudgetPlanner) CreateAIBudgets(userID uint) ([]models.Budget, error) {
	result, err := p.GenerateRecommendations(userID, models.PeriodMonthly)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return []models.Budget{}, nil
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	budgets := make([]models.Budget, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		budget := models.Budget{
			UserID:        userID,
			Category:      rec.Category,
			Limit:         rec.RecommendedLimit,
			Period:        models.PeriodMonthly,
			StartDate:     monthStart,
			EndDate:       monthEnd,
			IsAiGenerated: true,
			AiConfidence:  aiConfidence(rec.Confidence),
		}
		if err := database.DB.Create(&budget).Error; err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}

func aiConfidence(confidence string) float64 {
	switch confidence {
	case ConfidenceHigh:
		return 0.9
	case ConfidenceMedium:
		return 0.7
	default:
		return 0.5
	}
}

// AdjustBudgets suggests limit changes for active budgets: loosen the
// clearly overshooting ones, tighten underused AI-generated ones.
func (p *BudgetPlanner) AdjustBudgets(userID uint) ([]BudgetAdjustment, error) {
	var budgets []models.Budget
	if err := database.DB.
		Where("user_id = ? AND end_date >= ?", userID, time.Now()).
		Find(&budgets).Error; err != nil {
		return nil, err
	}

	adjustments := []BudgetAdjustment{}
	for _, b := range budgets {
		util := b.Utilization()
		switch {
		case util < 50 && b.IsAiGenerated:
			adjustments = append(adjustments, BudgetAdjustment{
				BudgetID:       b.ID,
				Category:       b.Category,
				CurrentLimit:   b.Limit,
				SuggestedLimit: Round2(b.Limit * 0.8),
				Utilization:    Round2(util),
				Reason:         "budget is underused, consider lowering the limit",
			})
		case util > 90:
			adjustments = append(adjustments, BudgetAdjustment{
				BudgetID:       b.ID,
				Category:       b.Category,
				CurrentLimit:   b.Limit,
				SuggestedLimit: Round2(b.Limit * 1.2),
				Utilization:    Round2(util),
				Reason:         "spending is close to or over the limit, consider raising it",
			})
		}
	}
	return adjustments, nil
}
