package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(setUserIDMiddleware(userID))
	r.GET("/summary", NewSummaryHandler().Get)
	return r
}

func TestSummaryHandler_Get(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `income`").
		WillReturnRows(sqlmock.NewRows(incomeColumns).
			AddRow("inc-1", "user-1", "Salary", 300.0, "Acme Corp", now, now, now, nil))
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow("exp-1", "user-1", "Groceries", 50.0, "needs", "food",
				false, nil, nil, now, now, nil).
			AddRow("exp-2", "user-1", "Movie", 30.0, "wants", "entertainment",
				false, nil, nil, now, now, nil))
	mock.ExpectQuery("SELECT .* FROM `budget_plans`").
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow("plan-1", "user-1", 40.0, 40.0, 20.0, true, now, now, nil))

	w := httptest.NewRecorder()
	summaryRouter("user-1").ServeHTTP(w, httptest.NewRequest("GET", "/summary", nil))

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalIncome    float64 `json:"total_income"`
			NeedsBudget    float64 `json:"needs_budget"`
			WantsBudget    float64 `json:"wants_budget"`
			SavingsBudget  float64 `json:"savings_budget"`
			NeedsSpent     float64 `json:"needs_spent"`
			WantsSpent     float64 `json:"wants_spent"`
			NeedsRemaining float64 `json:"needs_remaining"`
			WantsRemaining float64 `json:"wants_remaining"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 300.0, resp.Data.TotalIncome)
	assert.Equal(t, 120.0, resp.Data.NeedsBudget)
	assert.Equal(t, 120.0, resp.Data.WantsBudget)
	assert.Equal(t, 60.0, resp.Data.SavingsBudget)
	assert.Equal(t, 50.0, resp.Data.NeedsSpent)
	assert.Equal(t, 30.0, resp.Data.WantsSpent)
	assert.Equal(t, 70.0, resp.Data.NeedsRemaining)
	assert.Equal(t, 90.0, resp.Data.WantsRemaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_Get_NoActivePlanUsesDefaults(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `income`").
		WillReturnRows(sqlmock.NewRows(incomeColumns).
			AddRow("inc-1", "user-1", "Salary", 1000.0, "Acme Corp", now, now, now, nil))
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns))
	mock.ExpectQuery("SELECT .* FROM `budget_plans`").
		WillReturnRows(sqlmock.NewRows(planColumns))

	w := httptest.NewRecorder()
	summaryRouter("user-1").ServeHTTP(w, httptest.NewRequest("GET", "/summary", nil))

	assert.Equal(t, 200, w.Code)
	// 50/30/20 split when no plan is active.
	assert.Contains(t, w.Body.String(), `"needs_budget":500`)
	assert.Contains(t, w.Body.String(), `"wants_budget":300`)
	assert.Contains(t, w.Body.String(), `"savings_budget":200`)
	require.NoError(t, mock.ExpectationsWereMet())
}
