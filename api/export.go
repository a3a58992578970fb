package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"budget/database"
	"budget/middleware"
	"budget/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves expense exports.
type ExportHandler struct{}

// NewExportHandler creates an export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// queryExpenses loads the caller's expenses, optionally bounded by the
// start_date/end_date query params (YYYY-MM-DD, inclusive).
func (h *ExportHandler) queryExpenses(c *gin.Context) ([]models.Expense, bool) {
	userID := middleware.GetCurrentUserID(c)
	query := database.DB.Where("user_id = ?", userID)

	if s := c.Query("start_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return nil, false
		}
		query = query.Where("created_at >= ?", t)
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return nil, false
		}
		query = query.Where("created_at <= ?", t.Add(24*time.Hour-time.Second))
	}

	expenses := make([]models.Expense, 0)
	if err := query.Order("created_at DESC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load expenses"))
		return nil, false
	}
	return expenses, true
}

// ExportCSV exports expenses as CSV
// @Summary Export expenses as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD)"
// @Param end_date query string false "end date (YYYY-MM-DD)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	expenses, ok := h.queryExpenses(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	headers := []string{"ID", "Name", "Amount", "Category", "Subcategory", "Recurring", "Created At"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "Failed to build CSV")
		return
	}
	for _, e := range expenses {
		recurring := ""
		if e.IsRecurring && e.RecurringInterval != nil {
			recurring = *e.RecurringInterval
		}
		row := []string{
			e.ID,
			e.Name,
			fmt.Sprintf("%.2f", e.Amount),
			e.Category,
			e.Subcategory,
			recurring,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "Failed to build CSV")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "Failed to build CSV")
		return
	}

	filename := fmt.Sprintf("expenses_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON exports expenses as JSON
// @Summary Export expenses as JSON
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD)"
// @Param end_date query string false "end date (YYYY-MM-DD)"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	expenses, ok := h.queryExpenses(c)
	if !ok {
		return
	}

	var totalAmount float64
	for _, e := range expenses {
		totalAmount += e.Amount
	}

	Success(c, gin.H{
		"total_count":  len(expenses),
		"total_amount": totalAmount,
		"expenses":     expenses,
	})
}

// ExportExcel exports expenses as an xlsx workbook
// @Summary Export expenses as Excel
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string false "start date (YYYY-MM-DD)"
// @Param end_date query string false "end date (YYYY-MM-DD)"
// @Success 200 {file} file "xlsx file"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	expenses, ok := h.queryExpenses(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Expenses"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "F", 14)
	f.SetColWidth(sheetName, "G", "G", 20)

	headers := []string{"ID", "Name", "Amount", "Category", "Subcategory", "Recurring", "Created At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var totalAmount float64
	for i, e := range expenses {
		row := i + 2
		recurring := ""
		if e.IsRecurring && e.RecurringInterval != nil {
			recurring = *e.RecurringInterval
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.Subcategory)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), recurring)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), e.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), dataStyle)
		totalAmount += e.Amount
	}

	summaryRow := len(expenses) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), totalAmount)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("%d records", len(expenses)))
	f.MergeCell(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("G%d", summaryRow))

	filename := fmt.Sprintf("expenses_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "Failed to build Excel file")
		return
	}
}
