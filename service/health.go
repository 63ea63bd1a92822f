package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/models"
)

// Component weights of the overall health score.
const (
	weightSavingsRate     = 0.30
	weightBudgetAdherence = 0.25
	weightIncomeStability = 0.20
	weightGoalProgress    = 0.15
	weightEmergencyFund   = 0.10
)

const (
	spendingPatternDays = 90
	minSavingsTrigger   = 50.0
)

// categoryBenchmarks holds the recommended share of total spending per
// category. Categories not listed fall back to the default.
var categoryBenchmarks = map[string]float64{
	models.CategoryHousing:        0.30,
	models.CategoryTransportation: 0.15,
	models.CategoryFood:           0.15,
	models.CategoryUtilities:      0.10,
	models.CategoryHealthcare:     0.10,
	models.CategoryEntertainment:  0.05,
	models.CategoryShopping:       0.05,
}

const defaultBenchmark = 0.10

// HealthMetrics are the five component scores, each on a 0-100 scale.
type HealthMetrics struct {
	SavingsRate     float64 `json:"savings_rate"`
	BudgetAdherence float64 `json:"budget_adherence"`
	IncomeStability float64 `json:"income_stability"`
	GoalProgress    float64 `json:"goal_progress"`
	EmergencyFund   float64 `json:"emergency_fund"`
}

// HealthScore is the current-month financial health assessment.
type HealthScore struct {
	Score           int           `json:"score"`
	Rating          string        `json:"rating"`
	Metrics         HealthMetrics `json:"metrics"`
	SavingsRate     float64       `json:"actual_savings_rate"`
	MonthlyIncome   float64       `json:"monthly_income"`
	MonthlyExpenses float64       `json:"monthly_expenses"`
	Insights        []string      `json:"insights"`
}

// CategorySpend is one category's slice of total spending.
type CategorySpend struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SpendingPatterns is the category distribution of recent spending.
type SpendingPatterns struct {
	WindowDays    int             `json:"window_days"`
	Total         float64         `json:"total"`
	Categories    []CategorySpend `json:"categories"`
	TopCategories []CategorySpend `json:"top_categories"`
}

// SavingsOpportunity flags a category spending well above benchmark.
type SavingsOpportunity struct {
	Category         string  `json:"category"`
	CurrentSpending  float64 `json:"current_spending"`
	CurrentShare     float64 `json:"current_share"`
	BenchmarkShare   float64 `json:"benchmark_share"`
	PotentialSavings float64 `json:"potential_savings"`
	Suggestion       string  `json:"suggestion"`
}

// HealthService assesses the user's overall financial situation. The
// provider, when configured, contributes externally generated advice.
type HealthService struct {
	provider RecommendationProvider
}

// NewHealthService creates a health service. provider may be nil.
func NewHealthService(provider RecommendationProvider) *HealthService {
	return &HealthService{provider: provider}
}

// currentMonthBounds returns the start and end of the current calendar
// month.
func currentMonthBounds() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Second)
}

// CalculateHealthScore scores the current calendar month.
func (s *HealthService) CalculateHealthScore(userID uint) (*HealthScore, error) {
	start, end := currentMonthBounds()

	var income float64
	if err := database.DB.Model(&models.Income{}).
		Where("user_id = ? AND income_date BETWEEN ? AND ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)").Scan(&income).Error; err != nil {
		return nil, err
	}

	var expenses float64
	if err := database.DB.Model(&models.Expense{}).
		Where("user_id = ? AND expense_date BETWEEN ? AND ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)").Scan(&expenses).Error; err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := database.DB.
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, end, start).
		Find(&budgets).Error; err != nil {
		return nil, err
	}

	var goals []models.FinancialGoal
	if err := database.DB.
		Where("user_id = ? AND status = ?", userID, models.GoalStatusInProgress).
		Find(&goals).Error; err != nil {
		return nil, err
	}

	return ComputeHealthScore(income, expenses, budgets, goals), nil
}

// ComputeHealthScore derives the weighted health score from a month's
// totals. Income stability has no history model yet and is a two-level
// stub keyed on whether any income was recorded.
func ComputeHealthScore(income, expenses float64, budgets []models.Budget, goals []models.FinancialGoal) *HealthScore {
	savingsRate := 0.0
	if income > 0 {
		savingsRate = (income - expenses) / income * 100
	}

	metrics := HealthMetrics{
		SavingsRate:     math.Min(100, math.Max(0, savingsRate*3)),
		BudgetAdherence: budgetAdherenceScore(budgets),
		IncomeStability: incomeStabilityScore(income),
		GoalProgress:    goalProgressScore(goals),
		EmergencyFund:   emergencyFundScore(income-expenses, expenses),
	}

	overall := int(math.Round(
		metrics.SavingsRate*weightSavingsRate +
			metrics.BudgetAdherence*weightBudgetAdherence +
			metrics.IncomeStability*weightIncomeStability +
			metrics.GoalProgress*weightGoalProgress +
			metrics.EmergencyFund*weightEmergencyFund))

	return &HealthScore{
		Score:           overall,
		Rating:          healthRating(overall),
		Metrics:         metrics,
		SavingsRate:     Round2(savingsRate),
		MonthlyIncome:   Round2(income),
		MonthlyExpenses: Round2(expenses),
		Insights:        healthInsights(metrics, savingsRate),
	}
}

func budgetAdherenceScore(budgets []models.Budget) float64 {
	if len(budgets) == 0 {
		return 50
	}
	var total float64
	for _, b := range budgets {
		util := b.Utilization()
		switch {
		case util > 100:
			total += math.Max(0, 100-(util-100))
		case util > 95:
			total += 90
		case util >= 70:
			total += 100
		default:
			total += 70 + util
		}
	}
	return total / float64(len(budgets))
}

func incomeStabilityScore(income float64) float64 {
	if income > 0 {
		return 80
	}
	return 40
}

func goalProgressScore(goals []models.FinancialGoal) float64 {
	if len(goals) == 0 {
		return 50
	}
	var total float64
	for _, g := range goals {
		total += math.Min(100, g.Progress())
	}
	return total / float64(len(goals))
}

func emergencyFundScore(savings, monthlyExpenses float64) float64 {
	switch {
	case savings > 3*monthlyExpenses:
		return 100
	case savings > monthlyExpenses:
		return 60
	default:
		return 30
	}
}

func healthRating(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func healthInsights(metrics HealthMetrics, savingsRate float64) []string {
	insights := []string{}
	if metrics.SavingsRate < 60 {
		insights = append(insights, "Your savings rate is low; aim to set aside at least 20% of income")
	}
	if metrics.BudgetAdherence < 70 {
		insights = append(insights, "Several budgets are off track this month")
	}
	if metrics.EmergencyFund < 60 {
		insights = append(insights, "Your emergency cushion covers less than a month of expenses")
	}
	if savingsRate > 30 {
		insights = append(insights, "Strong savings rate this month, keep it up")
	}
	if metrics.GoalProgress > 70 {
		insights = append(insights, "You are well on track toward your financial goals")
	}
	return insights
}

// AnalyzeSpendingPatterns breaks down the trailing 90 days of spending
// by category, largest first.
func (s *HealthService) AnalyzeSpendingPatterns(userID uint) (*SpendingPatterns, error) {
	since := time.Now().AddDate(0, 0, -spendingPatternDays)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date >= ?", userID, since).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	patterns := BuildSpendingPatterns(expenses)
	patterns.WindowDays = spendingPatternDays
	return patterns, nil
}

// BuildSpendingPatterns aggregates expenses into per-category shares.
func BuildSpendingPatterns(expenses []models.Expense) *SpendingPatterns {
	order := []string{}
	totals := map[string]float64{}
	counts := map[string]int{}
	var grand float64
	for _, e := range expenses {
		if _, ok := totals[e.Category]; !ok {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
		counts[e.Category]++
		grand += e.Amount
	}

	categories := make([]CategorySpend, 0, len(order))
	for _, c := range order {
		categories = append(categories, CategorySpend{
			Category:   c,
			Total:      Round2(totals[c]),
			Count:      counts[c],
			Percentage: Round2(Percentage(totals[c], grand)),
		})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Total > categories[j].Total
	})

	top := categories
	if len(top) > 3 {
		top = top[:3]
	}

	return &SpendingPatterns{
		Total:         Round2(grand),
		Categories:    categories,
		TopCategories: top,
	}
}

// GenerateRecommendations combines rule-based advice with whatever the
// external provider returns. External items come first; provider
// failures degrade silently to local advice.
func (s *HealthService) GenerateRecommendations(ctx context.Context, userID uint) ([]Recommendation, error) {
	health, err := s.CalculateHealthScore(userID)
	if err != nil {
		return nil, err
	}
	patterns, err := s.AnalyzeSpendingPatterns(userID)
	if err != nil {
		return nil, err
	}

	local := localRecommendations(health, patterns)

	if s.provider != nil {
		external := s.provider.FetchRecommendations(ctx, AdviceRequest{
			UserID:           userID,
			HealthScore:      health.Score,
			Metrics:          health.Metrics,
			SpendingPatterns: patterns,
		})
		if len(external) > 0 {
			return append(external, local...), nil
		}
	}
	return local, nil
}

func localRecommendations(health *HealthScore, patterns *SpendingPatterns) []Recommendation {
	recs := []Recommendation{}

	if health.Score < 60 {
		recs = append(recs, Recommendation{
			Type:        "health",
			Title:       "Improve your financial health",
			Description: "Your overall health score is below 60. Start with the weakest area in your metrics",
			Priority:    "high",
			Impact:      "high",
			Actionable:  true,
			Source:      "rules",
		})
	}
	if len(patterns.TopCategories) > 0 && patterns.TopCategories[0].Percentage > 40 {
		top := patterns.TopCategories[0]
		recs = append(recs, Recommendation{
			Type:     "spending",
			Title:    "Rebalance your spending",
			Description: fmt.Sprintf("%s takes %.0f%% of your spending; look for ways to spread it out",
				top.Category, top.Percentage),
			Priority:         "medium",
			Category:         top.Category,
			Impact:           "medium",
			Actionable:       true,
			PotentialSavings: Round2(top.Total * 0.15),
			Source:           "rules",
		})
	}
	if health.SavingsRate < 20 {
		rec := Recommendation{
			Type:        "savings",
			Title:       "Increase your savings rate",
			Description: "You are saving under 20% of income. Automating a monthly transfer helps",
			Priority:    "high",
			Impact:      "high",
			Actionable:  true,
			Source:      "rules",
		}
		// The gap to a 20% savings rate, when there is one.
		savings := health.MonthlyIncome - health.MonthlyExpenses
		if gap := health.MonthlyIncome*0.20 - savings; gap > 0 {
			rec.PotentialSavings = Round2(gap)
		}
		recs = append(recs, rec)
	}
	if health.Metrics.EmergencyFund < 60 {
		recs = append(recs, Recommendation{
			Type:        "emergency_fund",
			Title:       "Build an emergency fund",
			Description: "Aim for three months of expenses in easily accessible savings",
			Priority:    "high",
			Impact:      "critical",
			Actionable:  true,
			Source:      "rules",
		})
	}
	if health.Metrics.BudgetAdherence < 70 {
		recs = append(recs, Recommendation{
			Type:        "budget",
			Title:       "Get your budgets back on track",
			Description: "Spending is drifting past your limits. Review the categories that are over",
			Priority:    "medium",
			Impact:      "medium",
			Actionable:  true,
			Source:      "rules",
		})
	}
	if health.Metrics.GoalProgress < 50 {
		recs = append(recs, Recommendation{
			Type:        "goals",
			Title:       "Accelerate your goals",
			Description: "Your goals are behind schedule. Consider small recurring contributions",
			Priority:    "low",
			Impact:      "medium",
			Actionable:  true,
			Source:      "rules",
		})
	}
	return recs
}

// SavingsOpportunities compares the current month's category shares to
// spending benchmarks and flags the categories with meaningful slack.
func (s *HealthService) SavingsOpportunities(userID uint) ([]SavingsOpportunity, error) {
	start, end := currentMonthBounds()

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date BETWEEN ? AND ?", userID, start, end).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	return FindSavingsOpportunities(expenses), nil
}

// FindSavingsOpportunities flags categories whose spending share beats
// the benchmark by over five points with at least 50 in potential
// savings, largest saving first.
func FindSavingsOpportunities(expenses []models.Expense) []SavingsOpportunity {
	totals := map[string]float64{}
	order := []string{}
	var grand float64
	for _, e := range expenses {
		if _, ok := totals[e.Category]; !ok {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
		grand += e.Amount
	}
	if grand == 0 {
		return []SavingsOpportunity{}
	}

	opportunities := []SavingsOpportunity{}
	for _, category := range order {
		benchmark, ok := categoryBenchmarks[category]
		if !ok {
			benchmark = defaultBenchmark
		}
		share := totals[category] / grand * 100
		benchmarkShare := benchmark * 100
		if share <= benchmarkShare+5 {
			continue
		}
		savings := (share - benchmarkShare) / 100 * grand
		if savings <= minSavingsTrigger {
			continue
		}
		opportunities = append(opportunities, SavingsOpportunity{
			Category:         category,
			CurrentSpending:  Round2(totals[category]),
			CurrentShare:     Round2(share),
			BenchmarkShare:   benchmarkShare,
			PotentialSavings: Round2(savings),
			Suggestion: fmt.Sprintf("Bringing %s spending down to %.0f%% of your total would free up %.2f",
				category, benchmarkShare, savings),
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].PotentialSavings > opportunities[j].PotentialSavings
	})
	return opportunities
}
