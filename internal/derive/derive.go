// Package derive computes the read-time fields of budgets and goals.
// Everything here is a pure function of stored amounts: status, progress,
// spent, and remaining are derived on every read and never treated as
// authoritative when persisted.
package derive

import (
	"github.com/shopspring/decimal"

	"moolah/internal/models"
)

var hundred = decimal.NewFromInt(100)

// GoalStatus derives the effective status of a goal.
// An explicit archive always wins. Otherwise the goal is completed once the
// current amount reaches a positive target, and active in every other case.
func GoalStatus(current, target decimal.Decimal, stored models.GoalStatus) models.GoalStatus {
	if stored == models.GoalStatusArchived {
		return models.GoalStatusArchived
	}
	if target.IsPositive() && current.GreaterThanOrEqual(target) {
		return models.GoalStatusCompleted
	}
	if stored == "" {
		return models.GoalStatusActive
	}
	return stored
}

// GoalProgress derives the percentage of target reached, rounded to the
// nearest integer and clamped to [0, 100]. Returns nil when the target is
// not positive, since the ratio is undefined.
func GoalProgress(current, target decimal.Decimal) *int {
	if !target.IsPositive() {
		return nil
	}

	pct := current.Div(target).Mul(hundred).Round(0).IntPart()
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	p := int(pct)
	return &p
}

// ApplyGoal fills a goal's derived fields in place.
func ApplyGoal(g *models.Goal) {
	g.Progress = GoalProgress(g.CurrentAmount, g.TargetAmount)
	g.Status = GoalStatus(g.CurrentAmount, g.TargetAmount, g.Status)
}

// ApplyBudget fills a budget's derived fields from the already-computed
// spent total.
func ApplyBudget(b *models.Budget, spent decimal.Decimal) {
	b.Spent = spent
	b.Remaining = b.Amount.Sub(spent)
}
