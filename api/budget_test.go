package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `budgets`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/budgets", NewBudgetHandler().Create)

	body := `{"category":"Food","limit":8000,"period":"MONTHLY","start_date":"2026-01-01","end_date":"2026-01-31"}`
	req := httptest.NewRequest("POST", "/budgets", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data BudgetView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Omitted threshold falls back to the default.
	assert.Equal(t, 80.0, resp.Data.AlertThreshold)
	assert.Equal(t, 8000.0, resp.Data.Remaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Create_EndBeforeStart(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/budgets", NewBudgetHandler().Create)

	body := `{"category":"Food","limit":8000,"period":"MONTHLY","start_date":"2026-02-01","end_date":"2026-01-01"}`
	req := httptest.NewRequest("POST", "/budgets", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestBudgetHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "category", "limit_amount", "spent", "period",
			"start_date", "end_date", "alert_threshold",
		}).AddRow(1, 1, "Food", 8000.0, 9000.0, "MONTHLY",
			now.AddDate(0, 0, -10), now.AddDate(0, 0, 20), 80.0))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/budgets", NewBudgetHandler().List)

	req := httptest.NewRequest("GET", "/budgets?active=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data []BudgetView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].OverBudget)
	assert.True(t, resp.Data[0].ShouldAlert)
	assert.InDelta(t, 112.5, resp.Data[0].Utilization, 0.01)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `budgets`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/budgets/:id", NewBudgetHandler().Delete)

	req := httptest.NewRequest("DELETE", "/budgets/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
