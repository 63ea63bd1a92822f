package service

import (
	"sort"
	"time"

	"github.com/normie1221/Sanchay/database"
	"github.com/normie1221/Sanchay/models"
)

const (
	predictionWindowDays   = 180
	predictionMinExpenses  = 10
	recurringWindowDays    = 90
	recurringMaxGapDays    = 35.0
	upcomingDefaultDays    = 30
)

// CategoryPrediction is the next-month spending forecast for one
// category.
type CategoryPrediction struct {
	Category        string  `json:"category"`
	PredictedAmount float64 `json:"predicted_amount"`
	AvgAmount       float64 `json:"avg_amount"`
	TrendPercentage float64 `json:"trend_percentage"`
	Confidence      string  `json:"confidence"`
}

// PredictionResult is the full next-month forecast.
type PredictionResult struct {
	Success        bool                 `json:"success"`
	Message        string               `json:"message,omitempty"`
	MonthStart     time.Time            `json:"month_start,omitempty"`
	MonthEnd       time.Time            `json:"month_end,omitempty"`
	TotalPredicted float64              `json:"total_predicted"`
	Predictions    []CategoryPrediction `json:"predictions"`
}

// RecurringExpense is a merchant with a regular transaction cadence.
type RecurringExpense struct {
	Merchant        string    `json:"merchant"`
	Category        string    `json:"category"`
	AvgAmount       float64   `json:"avg_amount"`
	IntervalDays    float64   `json:"interval_days"`
	Occurrences     int       `json:"occurrences"`
	LastDate        time.Time `json:"last_date"`
	NextExpected    time.Time `json:"next_expected"`
	IsRecurring     bool      `json:"is_recurring"`
}

// UpcomingBills lists recurring charges expected inside the horizon.
type UpcomingBills struct {
	DaysAhead int                `json:"days_ahead"`
	Total     float64            `json:"total"`
	Bills     []RecurringExpense `json:"bills"`
}

// PredictionService forecasts future spending from history.
type PredictionService struct{}

// NewPredictionService creates a prediction service.
func NewPredictionService() *PredictionService {
	return &PredictionService{}
}

// PredictNextMonth forecasts per-category spending for the next
// calendar month. The per-category trend is derived from the last 30
// days against the historical average, then applied at half strength to
// damp one-off spikes.
func (s *PredictionService) PredictNextMonth(userID uint) (*PredictionResult, error) {
	since := time.Now().AddDate(0, 0, -predictionWindowDays)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date >= ?", userID, since).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	if len(expenses) < predictionMinExpenses {
		return &PredictionResult{
			Success:     false,
			Message:     "not enough expense history for a prediction",
			Predictions: []CategoryPrediction{},
		}, nil
	}

	predictions := PredictByCategory(expenses, time.Now())

	now := time.Now()
	nextMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	nextMonthEnd := nextMonthStart.AddDate(0, 1, 0).Add(-time.Second)

	var total float64
	for _, p := range predictions {
		total += p.PredictedAmount
	}

	return &PredictionResult{
		Success:        true,
		MonthStart:     nextMonthStart,
		MonthEnd:       nextMonthEnd,
		TotalPredicted: Round2(total),
		Predictions:    predictions,
	}, nil
}

// PredictByCategory builds one prediction per category, sorted by
// predicted amount descending.
func PredictByCategory(expenses []models.Expense, now time.Time) []CategoryPrediction {
	monthAgo := now.AddDate(0, 0, -30)

	order := []string{}
	amounts := map[string][]float64{}
	lastMonth := map[string]float64{}
	for _, e := range expenses {
		if _, ok := amounts[e.Category]; !ok {
			order = append(order, e.Category)
		}
		amounts[e.Category] = append(amounts[e.Category], e.Amount)
		if !e.ExpenseDate.Before(monthAgo) {
			lastMonth[e.Category] += e.Amount
		}
	}

	predictions := make([]CategoryPrediction, 0, len(order))
	for _, category := range order {
		values := amounts[category]
		avg := Average(values)

		trend := 0.0
		if avg != 0 {
			trend = (lastMonth[category] - avg) / avg * 100
		}

		predictions = append(predictions, CategoryPrediction{
			Category:        category,
			PredictedAmount: Round2(avg * (1 + trend/200)),
			AvgAmount:       Round2(avg),
			TrendPercentage: Round2(trend),
			Confidence:      predictionConfidence(len(values)),
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].PredictedAmount > predictions[j].PredictedAmount
	})
	return predictions
}

func predictionConfidence(count int) string {
	switch {
	case count >= 10:
		return ConfidenceHigh
	case count >= 5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DetectRecurring finds merchants charged on a regular cadence within
// the trailing 90 days. Merchants whose mean gap is too wide to count
// as recurring are dropped from the result.
func (s *PredictionService) DetectRecurring(userID uint) ([]RecurringExpense, error) {
	since := time.Now().AddDate(0, 0, -recurringWindowDays)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND expense_date >= ? AND merchant <> ''", userID, since).
		Order("expense_date ASC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	recurring := []RecurringExpense{}
	for _, r := range FindRecurring(expenses) {
		if r.IsRecurring {
			recurring = append(recurring, r)
		}
	}
	return recurring, nil
}

// FindRecurring groups expenses by merchant (input ordered oldest
// first) and flags merchants whose mean gap between charges is under 35
// days.
func FindRecurring(expenses []models.Expense) []RecurringExpense {
	order := []string{}
	byMerchant := map[string][]models.Expense{}
	for _, e := range expenses {
		if _, ok := byMerchant[e.Merchant]; !ok {
			order = append(order, e.Merchant)
		}
		byMerchant[e.Merchant] = append(byMerchant[e.Merchant], e)
	}

	recurring := []RecurringExpense{}
	for _, merchant := range order {
		group := byMerchant[merchant]
		if len(group) < 2 {
			continue
		}

		var gapSum float64
		for i := 1; i < len(group); i++ {
			gapSum += group[i].ExpenseDate.Sub(group[i-1].ExpenseDate).Hours() / 24
		}
		interval := gapSum / float64(len(group)-1)

		amounts := make([]float64, len(group))
		for i, e := range group {
			amounts[i] = e.Amount
		}

		last := group[len(group)-1].ExpenseDate
		recurring = append(recurring, RecurringExpense{
			Merchant:     merchant,
			Category:     group[len(group)-1].Category,
			AvgAmount:    Round2(Average(amounts)),
			IntervalDays: Round2(interval),
			Occurrences:  len(group),
			LastDate:     last,
			NextExpected: last.Add(time.Duration(interval * 24 * float64(time.Hour))),
			IsRecurring:  interval < recurringMaxGapDays,
		})
	}
	return recurring
}

// PredictUpcomingBills lists recurring charges expected within the
// horizon, soonest first.
func (s *PredictionService) PredictUpcomingBills(userID uint, daysAhead int) (*UpcomingBills, error) {
	if daysAhead <= 0 {
		daysAhead = upcomingDefaultDays
	}

	recurring, err := s.DetectRecurring(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	horizon := now.AddDate(0, 0, daysAhead)

	bills := []RecurringExpense{}
	var total float64
	for _, r := range recurring {
		if r.NextExpected.Before(now) || r.NextExpected.After(horizon) {
			continue
		}
		bills = append(bills, r)
		total += r.AvgAmount
	}

	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].NextExpected.Before(bills[j].NextExpected)
	})

	return &UpcomingBills{
		DaysAhead: daysAhead,
		Total:     Round2(total),
		Bills:     bills,
	}, nil
}
