package api

import (
	"time"

	"budget/database"
	"budget/middleware"
	"budget/models"

	"github.com/gin-gonic/gin"
)

// IncomeHandler serves the income CRUD endpoints.
type IncomeHandler struct{}

// NewIncomeHandler creates an income handler.
func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

// CreateIncomeRequest is the create body. DateReceived defaults to now.
type CreateIncomeRequest struct {
	Name         string  `json:"name" binding:"required" example:"Salary"`
	Amount       float64 `json:"amount" binding:"required,gt=0" example:"2500.00"`
	Source       string  `json:"source" binding:"required" example:"Acme Corp"`
	DateReceived string  `json:"date_received" binding:"omitempty" example:"2024-01-15T00:00:00Z"`
}

// UpdateIncomeRequest is the partial update body.
type UpdateIncomeRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1"`
	Amount       *float64 `json:"amount" binding:"omitempty,gt=0"`
	Source       *string  `json:"source" binding:"omitempty,min=1"`
	DateReceived *string  `json:"date_received" binding:"omitempty"`
}

// parseDateTime accepts RFC3339 or a bare date.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// List returns the caller's income records
// @Summary List income
// @Description List the caller's income records, newest first
// @Tags income
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "legacy filter, must equal the caller's id"
// @Success 200 {object} Response{data=[]models.Income}
// @Failure 401 {object} ErrorResponse
// @Router /income [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	// Legacy filter: naming another user is rejected outright, it never
	// silently narrows to the caller.
	if filter := c.Query("user_id"); filter != "" && filter != userID {
		Unauthorized(c, "You can only access your own income records")
		return
	}

	list := make([]models.Income, 0)
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to list income"))
		return
	}
	Success(c, list)
}

// Create records an income
// @Summary Create income
// @Tags income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "income"
// @Success 201 {object} Response{data=models.Income}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /income [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	dateReceived := time.Now()
	if req.DateReceived != "" {
		t, err := parseDateTime(req.DateReceived)
		if err != nil {
			BadRequest(c, "Invalid date_received, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		dateReceived = t
	}

	income := models.Income{
		UserID:       userID,
		Name:         req.Name,
		Amount:       req.Amount,
		Source:       req.Source,
		DateReceived: dateReceived,
	}
	if err := database.DB.Create(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to create income"))
		return
	}
	Created(c, income)
}

// Get returns one income record
// @Summary Get income
// @Tags income
// @Produce json
// @Security BearerAuth
// @Param id path string true "income id"
// @Success 200 {object} Response{data=models.Income}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "absent or not owned"
// @Router /income/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&income).Error; err != nil {
		NotFound(c, "Income not found")
		return
	}
	Success(c, income)
}

// Update modifies one income record
// @Summary Update income
// @Tags income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "income id"
// @Param request body UpdateIncomeRequest true "fields to change"
// @Success 200 {object} Response{data=models.Income}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /income/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&income).Error; err != nil {
		NotFound(c, "Income not found")
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Source != nil {
		updates["source"] = *req.Source
	}
	if req.DateReceived != nil {
		t, err := parseDateTime(*req.DateReceived)
		if err != nil {
			BadRequest(c, "Invalid date_received, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		updates["date_received"] = t
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&income).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "Failed to update income"))
			return
		}
		database.DB.Where("id = ?", income.ID).First(&income)
	}
	Success(c, income)
}

// Delete removes one income record
// @Summary Delete income
// @Tags income
// @Security BearerAuth
// @Param id path string true "income id"
// @Success 204 "deleted"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /income/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	result := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&models.Income{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "Failed to delete income"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "Income not found")
		return
	}
	NoContent(c)
}
