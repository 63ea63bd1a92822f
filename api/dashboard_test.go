package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_Overview(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(12000.0))
	mock.ExpectQuery("SELECT COALESCE.* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(50000.0))
	mock.ExpectQuery("SELECT count.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))
	mock.ExpectQuery("SELECT count.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category"}))
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "limit_amount", "spent"}))
	mock.ExpectQuery("SELECT .* FROM `financial_goals`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "target_amount", "current_amount"}))
	mock.ExpectQuery("SELECT .* FROM `fraud_alerts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard", NewDashboardHandler().Overview)

	req := httptest.NewRequest("GET", "/dashboard?period=week", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var days int
	require.NoError(t, json.Unmarshal(resp.Data["period_days"], &days))
	assert.Equal(t, 7, days)

	var net float64
	require.NoError(t, json.Unmarshal(resp.Data["net"], &net))
	assert.Equal(t, 38000.0, net)

	var suspicious int64
	require.NoError(t, json.Unmarshal(resp.Data["suspicious_count"], &suspicious))
	assert.Equal(t, int64(1), suspicious)

	require.NoError(t, mock.ExpectationsWereMet())
}
