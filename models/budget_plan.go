package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Default allocation used when a user has no active plan.
const (
	DefaultNeedsPercentage   = 50
	DefaultWantsPercentage   = 30
	DefaultSavingsPercentage = 20
)

// PercentageTolerance is the allowed drift of the needs/wants/savings sum
// from 100, absorbing the rounding of client-side editors.
var PercentageTolerance = decimal.NewFromFloat(0.01)

// BudgetPlan is a needs/wants/savings allocation. Per user, at most one plan
// is active at any committed state.
type BudgetPlan struct {
	ID                string         `json:"id" gorm:"type:char(36);primaryKey"`
	UserID            string         `json:"user_id" gorm:"type:char(36);index;not null"`
	NeedsPercentage   float64        `json:"needs_percentage" gorm:"type:decimal(5,2);not null"`
	WantsPercentage   float64        `json:"wants_percentage" gorm:"type:decimal(5,2);not null"`
	SavingsPercentage float64        `json:"savings_percentage" gorm:"type:decimal(5,2);not null"`
	Active            bool           `json:"active" gorm:"default:false;index"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
	User              User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (BudgetPlan) TableName() string {
	return "budget_plans"
}

// BeforeCreate assigns the primary key.
func (p *BudgetPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// SumsTo100 reports whether the three percentages sum to 100 within
// PercentageTolerance. Computed in fixed point so repeated edits of the same
// triple always agree with the stored values.
func SumsTo100(needs, wants, savings float64) bool {
	total := decimal.NewFromFloat(needs).
		Add(decimal.NewFromFloat(wants)).
		Add(decimal.NewFromFloat(savings))
	return total.Sub(decimal.NewFromInt(100)).Abs().LessThan(PercentageTolerance)
}
