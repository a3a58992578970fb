package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense categories. Savings has no spend concept, so it is not a category.
const (
	CategoryNeeds = "needs"
	CategoryWants = "wants"
)

// Expense subcategories, informational only.
const (
	SubcategoryFood           = "food"
	SubcategoryTransportation = "transportation"
	SubcategoryClothes        = "clothes"
	SubcategoryToys           = "toys"
	SubcategoryGadgets        = "gadgets"
	SubcategoryTravel         = "travel"
	SubcategoryUtilities      = "utilities"
	SubcategoryRent           = "rent"
	SubcategoryEntertainment  = "entertainment"
	SubcategoryOther          = "other"
)

// Recurring intervals.
const (
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

// Expense is a single expense record.
type Expense struct {
	ID                string         `json:"id" gorm:"type:char(36);primaryKey"`
	UserID            string         `json:"user_id" gorm:"type:char(36);index;not null"`
	Name              string         `json:"name" gorm:"size:100;not null"`
	Amount            float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category          string         `json:"category" gorm:"size:20;not null"`
	Subcategory       string         `json:"subcategory" gorm:"size:20;not null"`
	IsRecurring       bool           `json:"is_recurring" gorm:"default:false"`
	RecurringInterval *string        `json:"recurring_interval" gorm:"size:20"`
	NextDueDate       *time.Time     `json:"next_due_date"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
	User              User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Expense) TableName() string {
	return "expenses"
}

// BeforeCreate assigns the primary key.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Normalize clears the recurring fields when the expense is not recurring.
// Callers are not trusted to keep them consistent.
func (e *Expense) Normalize() {
	if !e.IsRecurring {
		e.RecurringInterval = nil
		e.NextDueDate = nil
	}
}

// GetSubcategories returns all expense subcategories.
func GetSubcategories() []string {
	return []string{
		SubcategoryFood,
		SubcategoryTransportation,
		SubcategoryClothes,
		SubcategoryToys,
		SubcategoryGadgets,
		SubcategoryTravel,
		SubcategoryUtilities,
		SubcategoryRent,
		SubcategoryEntertainment,
		SubcategoryOther,
	}
}
