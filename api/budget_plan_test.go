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

var planColumns = []string{
	"id", "user_id", "needs_percentage", "wants_percentage", "savings_percentage",
	"active", "created_at", "updated_at", "deleted_at",
}

func planRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(setUserIDMiddleware(userID))
	h := NewBudgetPlanHandler()
	r.GET("/budget-plans", h.List)
	r.POST("/budget-plans", h.Create)
	r.GET("/budget-plans/:id", h.Get)
	r.PUT("/budget-plans/:id", h.Update)
	r.DELETE("/budget-plans/:id", h.Delete)
	return r
}

func TestBudgetPlanHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// Creating an active plan deactivates the others in one transaction.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `budget_plans` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `budget_plans`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body := `{"needs_percentage":50,"wants_percentage":30,"savings_percentage":20}`
	req := httptest.NewRequest("POST", "/budget-plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID     string `json:"id"`
			Active bool   `json:"active"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.ID)
	assert.True(t, resp.Data.Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_Create_BadSum(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// Rejected before any SQL runs.
	body := `{"needs_percentage":50,"wants_percentage":30,"savings_percentage":30}`
	req := httptest.NewRequest("POST", "/budget-plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Percentages must sum to 100")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_Create_MissingPercentage(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	body := `{"needs_percentage":50,"wants_percentage":50}`
	req := httptest.NewRequest("POST", "/budget-plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_Create_ZeroSavingsIsValid(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `budget_plans` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `budget_plans`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Zero is a legal percentage as long as the triple sums to 100.
	body := `{"needs_percentage":70,"wants_percentage":30,"savings_percentage":0}`
	req := httptest.NewRequest("POST", "/budget-plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_List_ActiveFilter(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `budget_plans`").
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow("plan-1", "user-1", 50.0, 30.0, 20.0, true, now, now, nil))

	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w,
		httptest.NewRequest("GET", "/budget-plans?active=true", nil))

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "plan-1")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_List_ForeignUserIDFilter(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w,
		httptest.NewRequest("GET", "/budget-plans?user_id=user-2", nil))

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "You can only access your own budget plans")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_Get_NotOwnedLooksAbsent(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `budget_plans`").
		WillReturnRows(sqlmock.NewRows(planColumns))

	w := httptest.NewRecorder()
	planRouter("user-2").ServeHTTP(w,
		httptest.NewRequest("GET", "/budget-plans/plan-1", nil))

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "Budget plan not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_Update_Activate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `budget_plans`").
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow("plan-2", "user-1", 40.0, 40.0, 20.0, false, now, now, nil))
	mock.ExpectExec("UPDATE `budget_plans` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `budget_plans` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM `budget_plans`").
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow("plan-2", "user-1", 40.0, 40.0, 20.0, true, now, now, nil))
	mock.ExpectCommit()

	body := `{"active":true}`
	req := httptest.NewRequest("PUT", "/budget-plans/plan-2", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"active":true`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_Update_BadEffectiveSum(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `budget_plans`").
		WillReturnRows(sqlmock.NewRows(planColumns).
			AddRow("plan-1", "user-1", 50.0, 30.0, 20.0, true, now, now, nil))
	mock.ExpectRollback()

	// 60 plus the stored 30 and 20 breaks the invariant.
	body := `{"needs_percentage":60}`
	req := httptest.NewRequest("PUT", "/budget-plans/plan-1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Percentages must sum to 100")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `budget_plans` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	planRouter("user-1").ServeHTTP(w,
		httptest.NewRequest("DELETE", "/budget-plans/plan-1", nil))

	assert.Equal(t, 204, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetPlanHandler_Delete_NotOwnedLooksAbsent(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `budget_plans` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	planRouter("user-2").ServeHTTP(w,
		httptest.NewRequest("DELETE", "/budget-plans/plan-1", nil))

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
