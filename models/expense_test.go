package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpenseNormalize(t *testing.T) {
	interval := IntervalMonthly
	due := time.Now().AddDate(0, 1, 0)

	// Recurring fields survive when the expense is recurring.
	recurring := Expense{
		IsRecurring:       true,
		RecurringInterval: &interval,
		NextDueDate:       &due,
	}
	recurring.Normalize()
	assert.NotNil(t, recurring.RecurringInterval)
	assert.NotNil(t, recurring.NextDueDate)

	// A caller supplying recurring fields on a one-off expense loses them.
	oneOff := Expense{
		IsRecurring:       false,
		RecurringInterval: &interval,
		NextDueDate:       &due,
	}
	oneOff.Normalize()
	assert.Nil(t, oneOff.RecurringInterval)
	assert.Nil(t, oneOff.NextDueDate)
}

func TestGetSubcategories(t *testing.T) {
	subs := GetSubcategories()
	assert.Len(t, subs, 10)
	assert.Contains(t, subs, SubcategoryFood)
	assert.Contains(t, subs, SubcategoryRent)
	assert.Contains(t, subs, SubcategoryOther)
}
