package service

import (
	"github.com/shopspring/decimal"

	"budget/models"
)

// BudgetSummary is the derived budget-vs-actual view backing the dashboard.
// Remaining figures may be negative when the user is over budget.
type BudgetSummary struct {
	TotalIncome    float64 `json:"total_income"`
	NeedsBudget    float64 `json:"needs_budget"`
	WantsBudget    float64 `json:"wants_budget"`
	SavingsBudget  float64 `json:"savings_budget"`
	NeedsSpent     float64 `json:"needs_spent"`
	WantsSpent     float64 `json:"wants_spent"`
	NeedsRemaining float64 `json:"needs_remaining"`
	WantsRemaining float64 `json:"wants_remaining"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeSummary derives the budget summary from raw records and the active
// plan. With a nil plan the 50/30/20 defaults apply. All arithmetic is fixed
// point; values are rounded to 2 digits only on the way out.
func ComputeSummary(incomes []models.Income, expenses []models.Expense, activePlan *models.BudgetPlan) BudgetSummary {
	totalIncome := decimal.Zero
	for _, in := range incomes {
		totalIncome = totalIncome.Add(decimal.NewFromFloat(in.Amount))
	}

	needsPct := decimal.NewFromInt(models.DefaultNeedsPercentage)
	wantsPct := decimal.NewFromInt(models.DefaultWantsPercentage)
	savingsPct := decimal.NewFromInt(models.DefaultSavingsPercentage)
	if activePlan != nil {
		needsPct = decimal.NewFromFloat(activePlan.NeedsPercentage)
		wantsPct = decimal.NewFromFloat(activePlan.WantsPercentage)
		savingsPct = decimal.NewFromFloat(activePlan.SavingsPercentage)
	}

	needsBudget := totalIncome.Mul(needsPct).Div(oneHundred)
	wantsBudget := totalIncome.Mul(wantsPct).Div(oneHundred)
	savingsBudget := totalIncome.Mul(savingsPct).Div(oneHundred)

	needsSpent := decimal.Zero
	wantsSpent := decimal.Zero
	for _, e := range expenses {
		switch e.Category {
		case models.CategoryNeeds:
			needsSpent = needsSpent.Add(decimal.NewFromFloat(e.Amount))
		case models.CategoryWants:
			wantsSpent = wantsSpent.Add(decimal.NewFromFloat(e.Amount))
		}
	}

	return BudgetSummary{
		TotalIncome:    round2(totalIncome),
		NeedsBudget:    round2(needsBudget),
		WantsBudget:    round2(wantsBudget),
		SavingsBudget:  round2(savingsBudget),
		NeedsSpent:     round2(needsSpent),
		WantsSpent:     round2(wantsSpent),
		NeedsRemaining: round2(needsBudget.Sub(needsSpent)),
		WantsRemaining: round2(wantsBudget.Sub(wantsSpent)),
	}
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
