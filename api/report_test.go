package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/normie1221/Sanchay/config"
	"github.com/normie1221/Sanchay/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportHandler_Generate_InvalidType(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/reports", NewReportHandler(cfg).Generate)

	body := `{"type":"WEEKLY_DIGEST"}`
	req := httptest.NewRequest("POST", "/reports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid report type", resp["message"])
}

func TestReportHandler_Generate_MissingDates(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/reports", NewReportHandler(cfg).Generate)

	body := `{"type":"EXPENSE_ANALYSIS","format":"CSV"}`
	req := httptest.NewRequest("POST", "/reports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestReportHandler_ExpenseAnalysis(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "expense_date"}).
			AddRow(1, 1, 300.0, "Food", base).
			AddRow(2, 1, 100.0, "Food", base.AddDate(0, 0, 1)).
			AddRow(3, 1, 600.0, "Housing", base.AddDate(0, 0, 2)))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/reports/expense-analysis", NewReportHandler(cfg).ExpenseAnalysis)

	req := httptest.NewRequest("GET", "/reports/expense-analysis?start_date=2026-01-01&end_date=2026-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data service.ExpenseAnalysis `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1000.0, resp.Data.TotalSpent)
	assert.Equal(t, 3, resp.Data.TransactionCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportHandler_ExpenseAnalysis_MissingParams(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/reports/expense-analysis", NewReportHandler(cfg).ExpenseAnalysis)

	req := httptest.NewRequest("GET", "/reports/expense-analysis?start_date=2026-01-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
