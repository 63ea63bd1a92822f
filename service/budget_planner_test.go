package service

import (
	"testing"

	"github.com/normie1221/Sanchay/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendLimits(t *testing.T) {
	expenses := []models.Expense{
		{Category: "Food", Amount: 100},
		{Category: "Food", Amount: 100},
		{Category: "Food", Amount: 100},
		{Category: "Housing", Amount: 5000},
	}

	recs := RecommendLimits(expenses)
	require.Len(t, recs, 2)

	// Sorted by recommended limit descending.
	assert.Equal(t, "Housing", recs[0].Category)
	assert.Equal(t, 5000.0, recs[0].RecommendedLimit)
	assert.Equal(t, 1, recs[0].TransactionCount)

	// Identical amounts have zero deviation, so the limit equals the
	// mean and confidence is high.
	assert.Equal(t, "Food", recs[1].Category)
	assert.Equal(t, 100.0, recs[1].RecommendedLimit)
	assert.Equal(t, 100.0, recs[1].AvgSpending)
	assert.Equal(t, 300.0, recs[1].TotalSpending)
	assert.Equal(t, ConfidenceHigh, recs[1].Confidence)
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, ConfidenceLow, confidenceFor(0, 0))
	assert.Equal(t, ConfidenceHigh, confidenceFor(100, 20))
	assert.Equal(t, ConfidenceMedium, confidenceFor(100, 40))
	assert.Equal(t, ConfidenceLow, confidenceFor(100, 60))
}

func TestBudgetPlanner_GenerateRecommendations_NoHistory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category"}))

	result, err := NewBudgetPlanner().GenerateRecommendations(1, "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanner_GenerateRecommendations(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "category"}).
		AddRow(1, 1, 200.0, "Food").
		AddRow(2, 1, 400.0, "Food").
		AddRow(3, 1, 1200.0, "Housing")
	mock.ExpectQuery("SELECT .* FROM `expenses`").WillReturnRows(rows)

	result, err := NewBudgetPlanner().GenerateRecommendations(1, "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.PeriodMonthly, result.Period)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "Housing", result.Recommendations[0].Category)
	// Food: mean 300, population stdDev 100, limit 400.
	assert.Equal(t, 400.0, result.Recommendations[1].RecommendedLimit)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanner_AdjustBudgets(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "user_id", "category", "limit_amount", "spent", "is_ai_generated"}).
		AddRow(1, 1, "Food", 1000.0, 300.0, true).   // 30%, AI: tighten
		AddRow(2, 1, "Housing", 1000.0, 950.0, false). // 95%: loosen
		AddRow(3, 1, "Shopping", 1000.0, 300.0, false) // 30%, manual: no change
	mock.ExpectQuery("SELECT .* FROM `budgets`").WillReturnRows(rows)

	adjustments, err := NewBudgetPlanner().AdjustBudgets(1)
	require.NoError(t, err)
	require.Len(t, adjustments, 2)

	assert.Equal(t, uint(1), adjustments[0].BudgetID)
	assert.Equal(t, 800.0, adjustments[0].SuggestedLimit)
	assert.Equal(t, uint(2), adjustments[1].BudgetID)
	assert.Equal(t, 1200.0, adjustments[1].SuggestedLimit)
	require.NoError(t, mock.ExpectationsWereMet())
}
