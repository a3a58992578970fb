package api

import (
	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler serves the dashboard aggregation endpoint.
type SummaryHandler struct{}

// NewSummaryHandler creates a summary handler.
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// Get computes the caller's budget summary
// @Summary Budget summary
// @Description Derive budget/spend/remaining figures from the caller's income, expenses and active plan. Falls back to a 50/30/20 split when no plan is active.
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.BudgetSummary}
// @Failure 401 {object} ErrorResponse
// @Router /summary [get]
func (h *SummaryHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var incomes []models.Income
	if err := database.DB.Where("user_id = ?", userID).Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load income"))
		return
	}

	var expenses []models.Expense
	if err := database.DB.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load expenses"))
		return
	}

	activePlan, err := service.NewPlanService(database.DB).ActivePlan(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load active plan"))
		return
	}

	Success(c, service.ComputeSummary(incomes, expenses, activePlan))
}
