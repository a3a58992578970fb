package service

import (
	"errors"

	"budget/models"

	"gorm.io/gorm"
)

// PlanService maintains the single-active-plan-per-user invariant. Every
// mutation runs inside one transaction so no reader ever observes two active
// plans for the same user.
type PlanService struct {
	db *gorm.DB
}

// NewPlanService creates a plan service on the given database handle.
func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

// CreatePlanInput carries the fields for a new plan. A nil Active means
// active, matching the dashboard's create-and-switch flow.
type CreatePlanInput struct {
	Needs   float64
	Wants   float64
	Savings float64
	Active  *bool
}

// UpdatePlanInput carries a partial update. Nil fields retain prior values.
type UpdatePlanInput struct {
	Needs   *float64
	Wants   *float64
	Savings *float64
	Active  *bool
}

// List returns the user's plans, newest first, optionally filtered on active.
func (s *PlanService) List(userID string, active *bool) ([]models.BudgetPlan, error) {
	query := s.db.Where("user_id = ?", userID)
	if active != nil {
		query = query.Where("active = ?", *active)
	}
	var plans []models.BudgetPlan
	if err := query.Order("created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Get returns the plan if it exists and is owned by userID.
func (s *PlanService) Get(planID, userID string) (*models.BudgetPlan, error) {
	var plan models.BudgetPlan
	err := s.db.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "Budget plan"}
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ActivePlan returns the user's active plan, or nil if there is none.
func (s *PlanService) ActivePlan(userID string) (*models.BudgetPlan, error) {
	var plan models.BudgetPlan
	err := s.db.Where("user_id = ? AND active = ?", userID, true).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create validates the percentage sum and inserts the plan. When the plan is
// active, every other active plan of the user is deactivated in the same
// transaction, before the insert.
func (s *PlanService) Create(userID string, in CreatePlanInput) (*models.BudgetPlan, error) {
	if !models.SumsTo100(in.Needs, in.Wants, in.Savings) {
		return nil, &ValidationError{Message: "Percentages must sum to 100"}
	}

	active := in.Active == nil || *in.Active

	plan := models.BudgetPlan{
		UserID:            userID,
		NeedsPercentage:   in.Needs,
		WantsPercentage:   in.Wants,
		SavingsPercentage: in.Savings,
		Active:            active,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if active {
			if err := tx.Model(&models.BudgetPlan{}).
				Where("user_id = ? AND active = ?", userID, true).
				Update("active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&plan).Error
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update applies a partial update. When percentages change, the effective
// triple (supplied or existing) must still sum to 100. Setting active
// deactivates every other plan of the user first, inside the same
// transaction. Re-activating an already active plan is a no-op and succeeds.
func (s *PlanService) Update(planID, userID string, in UpdatePlanInput) (*models.BudgetPlan, error) {
	var plan models.BudgetPlan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Budget plan"}
		}
		if err != nil {
			return err
		}

		if in.Needs != nil || in.Wants != nil || in.Savings != nil {
			needs := plan.NeedsPercentage
			wants := plan.WantsPercentage
			savings := plan.SavingsPercentage
			if in.Needs != nil {
				needs = *in.Needs
			}
			if in.Wants != nil {
				wants = *in.Wants
			}
			if in.Savings != nil {
				savings = *in.Savings
			}
			if !models.SumsTo100(needs, wants, savings) {
				return &ValidationError{Message: "Percentages must sum to 100"}
			}
		}

		if in.Active != nil && *in.Active {
			if err := tx.Model(&models.BudgetPlan{}).
				Where("user_id = ? AND id <> ? AND active = ?", userID, planID, true).
				Update("active", false).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if in.Needs != nil {
			updates["needs_percentage"] = *in.Needs
		}
		if in.Wants != nil {
			updates["wants_percentage"] = *in.Wants
		}
		if in.Savings != nil {
			updates["savings_percentage"] = *in.Savings
		}
		if in.Active != nil {
			updates["active"] = *in.Active
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&plan).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", planID).First(&plan).Error
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Activate marks the plan active, deactivating the user's other plans.
func (s *PlanService) Activate(planID, userID string) (*models.BudgetPlan, error) {
	active := true
	return s.Update(planID, userID, UpdatePlanInput{Active: &active})
}

// Delete removes the plan. No other plan is re-activated; a user may end up
// with zero active plans, and the summary then falls back to the defaults.
func (s *PlanService) Delete(planID, userID string) error {
	result := s.db.Where("id = ? AND user_id = ?", planID, userID).Delete(&models.BudgetPlan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "Budget plan"}
	}
	return nil
}
