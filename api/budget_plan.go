package api

import (
	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// BudgetPlanHandler serves the budget plan endpoints. All activation
// semantics live in service.PlanService.
type BudgetPlanHandler struct{}

// NewBudgetPlanHandler creates a budget plan handler.
func NewBudgetPlanHandler() *BudgetPlanHandler {
	return &BudgetPlanHandler{}
}

func (h *BudgetPlanHandler) plans() *service.PlanService {
	return service.NewPlanService(database.DB)
}

// CreateBudgetPlanRequest is the create body. Percentages are required and
// must sum to 100; active defaults to true.
type CreateBudgetPlanRequest struct {
	NeedsPercentage   *float64 `json:"needs_percentage" binding:"required,gte=0,lte=100" example:"50"`
	WantsPercentage   *float64 `json:"wants_percentage" binding:"required,gte=0,lte=100" example:"30"`
	SavingsPercentage *float64 `json:"savings_percentage" binding:"required,gte=0,lte=100" example:"20"`
	Active            *bool    `json:"active"`
}

// UpdateBudgetPlanRequest is the partial update body.
type UpdateBudgetPlanRequest struct {
	NeedsPercentage   *float64 `json:"needs_percentage" binding:"omitempty,gte=0,lte=100"`
	WantsPercentage   *float64 `json:"wants_percentage" binding:"omitempty,gte=0,lte=100"`
	SavingsPercentage *float64 `json:"savings_percentage" binding:"omitempty,gte=0,lte=100"`
	Active            *bool    `json:"active"`
}

// List returns the caller's budget plans
// @Summary List budget plans
// @Description List the caller's plans, newest first, optionally filtered on active
// @Tags budget-plans
// @Produce json
// @Security BearerAuth
// @Param active query string false "true or false"
// @Param user_id query string false "legacy filter, must equal the caller's id"
// @Success 200 {object} Response{data=[]models.BudgetPlan}
// @Failure 401 {object} ErrorResponse
// @Router /budget-plans [get]
func (h *BudgetPlanHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if filter := c.Query("user_id"); filter != "" && filter != userID {
		Unauthorized(c, "You can only access your own budget plans")
		return
	}

	var active *bool
	switch c.Query("active") {
	case "true":
		v := true
		active = &v
	case "false":
		v := false
		active = &v
	}

	list, err := h.plans().List(userID, active)
	if err != nil {
		RespondError(c, err, "Failed to list budget plans")
		return
	}
	if list == nil {
		list = make([]models.BudgetPlan, 0)
	}
	Success(c, list)
}

// Create inserts a budget plan
// @Summary Create budget plan
// @Description Create a plan. When active, every other active plan of the caller is deactivated in the same transaction.
// @Tags budget-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetPlanRequest true "plan"
// @Success 201 {object} Response{data=models.BudgetPlan}
// @Failure 400 {object} ErrorResponse "percentages must sum to 100"
// @Failure 401 {object} ErrorResponse
// @Router /budget-plans [post]
func (h *BudgetPlanHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateBudgetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	plan, err := h.plans().Create(userID, service.CreatePlanInput{
		Needs:   *req.NeedsPercentage,
		Wants:   *req.WantsPercentage,
		Savings: *req.SavingsPercentage,
		Active:  req.Active,
	})
	if err != nil {
		RespondError(c, err, "Failed to create budget plan")
		return
	}
	Created(c, plan)
}

// Get returns one budget plan
// @Summary Get budget plan
// @Tags budget-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "plan id"
// @Success 200 {object} Response{data=models.BudgetPlan}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "absent or not owned"
// @Router /budget-plans/{id} [get]
func (h *BudgetPlanHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	plan, err := h.plans().Get(c.Param("id"), userID)
	if err != nil {
		RespondError(c, err, "Failed to load budget plan")
		return
	}
	Success(c, plan)
}

// Update modifies one budget plan
// @Summary Update budget plan
// @Description Partial update. Setting active true deactivates the caller's other plans atomically.
// @Tags budget-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "plan id"
// @Param request body UpdateBudgetPlanRequest true "fields to change"
// @Success 200 {object} Response{data=models.BudgetPlan}
// @Failure 400 {object} ErrorResponse "percentages must sum to 100"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budget-plans/{id} [put]
func (h *BudgetPlanHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateBudgetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	plan, err := h.plans().Update(c.Param("id"), userID, service.UpdatePlanInput{
		Needs:   req.NeedsPercentage,
		Wants:   req.WantsPercentage,
		Savings: req.SavingsPercentage,
		Active:  req.Active,
	})
	if err != nil {
		RespondError(c, err, "Failed to update budget plan")
		return
	}
	Success(c, plan)
}

// Delete removes one budget plan
// @Summary Delete budget plan
// @Description Delete a plan. No other plan is re-activated; the caller may end up with zero active plans.
// @Tags budget-plans
// @Security BearerAuth
// @Param id path string true "plan id"
// @Success 204 "deleted"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budget-plans/{id} [delete]
func (h *BudgetPlanHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if err := h.plans().Delete(c.Param("id"), userID); err != nil {
		RespondError(c, err, "Failed to delete budget plan")
		return
	}
	NoContent(c)
}
