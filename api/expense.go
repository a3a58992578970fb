package api

import (
	"budget/database"
	"budget/middleware"
	"budget/models"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves the expense CRUD endpoints.
type ExpenseHandler struct{}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// CreateExpenseRequest is the create body.
type CreateExpenseRequest struct {
	Name              string  `json:"name" binding:"required" example:"Groceries"`
	Amount            float64 `json:"amount" binding:"required,gt=0" example:"82.50"`
	Category          string  `json:"category" binding:"required,oneof=needs wants" example:"needs"`
	Subcategory       string  `json:"subcategory" binding:"required,oneof=food transportation clothes toys gadgets travel utilities rent entertainment other" example:"food"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurringInterval *string `json:"recurring_interval" binding:"omitempty,oneof=weekly monthly yearly"`
	NextDueDate       *string `json:"next_due_date" binding:"omitempty"`
}

// UpdateExpenseRequest is the partial update body.
type UpdateExpenseRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=1"`
	Amount            *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category          *string  `json:"category" binding:"omitempty,oneof=needs wants"`
	Subcategory       *string  `json:"subcategory" binding:"omitempty,oneof=food transportation clothes toys gadgets travel utilities rent entertainment other"`
	IsRecurring       *bool    `json:"is_recurring"`
	RecurringInterval *string  `json:"recurring_interval" binding:"omitempty,oneof=weekly monthly yearly"`
	NextDueDate       *string  `json:"next_due_date" binding:"omitempty"`
}

// List returns the caller's expenses
// @Summary List expenses
// @Description List the caller's expenses, newest first, optionally filtered by category
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param category query string false "needs or wants"
// @Param user_id query string false "legacy filter, must equal the caller's id"
// @Success 200 {object} Response{data=[]models.Expense}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if filter := c.Query("user_id"); filter != "" && filter != userID {
		Unauthorized(c, "You can only access your own expenses")
		return
	}

	query := database.DB.Where("user_id = ?", userID)
	if category := c.Query("category"); category != "" {
		if category != models.CategoryNeeds && category != models.CategoryWants {
			BadRequest(c, `Category must be "needs" or "wants"`)
			return
		}
		query = query.Where("category = ?", category)
	}

	list := make([]models.Expense, 0)
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to list expenses"))
		return
	}
	Success(c, list)
}

// Create records an expense
// @Summary Create expense
// @Description Create an expense. Recurring fields are cleared unless is_recurring is true.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "expense"
// @Success 201 {object} Response{data=models.Expense}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	expense := models.Expense{
		UserID:            userID,
		Name:              req.Name,
		Amount:            req.Amount,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: req.RecurringInterval,
	}
	if req.NextDueDate != nil {
		t, err := parseDateTime(*req.NextDueDate)
		if err != nil {
			BadRequest(c, "Invalid next_due_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		expense.NextDueDate = &t
	}
	expense.Normalize()

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to create expense"))
		return
	}
	Created(c, expense)
}

// Get returns one expense
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "expense id"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "absent or not owned"
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&expense).Error; err != nil {
		NotFound(c, "Expense not found")
		return
	}
	Success(c, expense)
}

// Update modifies one expense
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "expense id"
// @Param request body UpdateExpenseRequest true "fields to change"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&expense).Error; err != nil {
		NotFound(c, "Expense not found")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if req.Name != nil {
		expense.Name = *req.Name
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Subcategory != nil {
		expense.Subcategory = *req.Subcategory
	}
	if req.IsRecurring != nil {
		expense.IsRecurring = *req.IsRecurring
	}
	if req.RecurringInterval != nil {
		expense.RecurringInterval = req.RecurringInterval
	}
	if req.NextDueDate != nil {
		t, err := parseDateTime(*req.NextDueDate)
		if err != nil {
			BadRequest(c, "Invalid next_due_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		expense.NextDueDate = &t
	}
	expense.Normalize()

	if err := database.DB.Save(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to update expense"))
		return
	}
	Success(c, expense)
}

// Delete removes one expense
// @Summary Delete expense
// @Tags expenses
// @Security BearerAuth
// @Param id path string true "expense id"
// @Success 204 "deleted"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&models.Expense{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "Failed to delete expense"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "Expense not found")
		return
	}
	NoContent(c)
}
