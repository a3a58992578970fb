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

func exportRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(setUserIDMiddleware(userID))
	h := NewExportHandler()
	r.GET("/export/csv", h.ExportCSV)
	r.GET("/export/json", h.ExportJSON)
	r.GET("/export/excel", h.ExportExcel)
	return r
}

func TestExportHandler_CSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	interval := "monthly"
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow("exp-1", "user-1", "Rent", 1200.0, "needs", "rent",
				true, interval, now, now, now, nil).
			AddRow("exp-2", "user-1", "Movie", 15.5, "wants", "entertainment",
				false, nil, nil, now, now, nil))

	w := httptest.NewRecorder()
	exportRouter("user-1").ServeHTTP(w, httptest.NewRequest("GET", "/export/csv", nil))

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	body := w.Body.String()
	assert.Contains(t, body, "ID,Name,Amount,Category,Subcategory,Recurring,Created At")
	assert.Contains(t, body, "Rent,1200.00,needs,rent,monthly")
	assert.Contains(t, body, "Movie,15.50,wants,entertainment")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_JSON(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow("exp-1", "user-1", "Groceries", 82.5, "needs", "food",
				false, nil, nil, now, now, nil).
			AddRow("exp-2", "user-1", "Movie", 17.5, "wants", "entertainment",
				false, nil, nil, now, now, nil))

	w := httptest.NewRecorder()
	exportRouter("user-1").ServeHTTP(w, httptest.NewRequest("GET", "/export/json", nil))

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalCount  int     `json:"total_count"`
			TotalAmount float64 `json:"total_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.TotalCount)
	assert.Equal(t, 100.0, resp.Data.TotalAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_InvalidDateRange(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	w := httptest.NewRecorder()
	exportRouter("user-1").ServeHTTP(w,
		httptest.NewRequest("GET", "/export/csv?start_date=15-01-2024", nil))

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid start_date")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_Excel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow("exp-1", "user-1", "Groceries", 82.5, "needs", "food",
				false, nil, nil, now, now, nil))

	w := httptest.NewRecorder()
	exportRouter("user-1").ServeHTTP(w, httptest.NewRequest("GET", "/export/excel", nil))

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	// xlsx files are zip archives.
	assert.Equal(t, "PK", w.Body.String()[:2])
	require.NoError(t, mock.ExpectationsWereMet())
}
