package derive

import (
	"testing"

	"github.com/shopspring/decimal"

	"moolah/internal/models"
)

func TestGoalStatus(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		target  int64
		stored  models.GoalStatus
		want    models.GoalStatus
	}{
		{"fresh", 0, 1000, models.GoalStatusActive, models.GoalStatusActive},
		{"partial", 999, 1000, models.GoalStatusActive, models.GoalStatusActive},
		{"at_target", 1000, 1000, models.GoalStatusActive, models.GoalStatusCompleted},
		{"over_target", 1500, 1000, models.GoalStatusActive, models.GoalStatusCompleted},
		{"archived_wins_over_completed", 1500, 1000, models.GoalStatusArchived, models.GoalStatusArchived},
		{"archived_wins_over_active", 0, 1000, models.GoalStatusArchived, models.GoalStatusArchived},
		{"zero_target_never_completes", 500, 0, models.GoalStatusActive, models.GoalStatusActive},
		{"empty_stored_defaults_active", 0, 1000, "", models.GoalStatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GoalStatus(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.target), tt.stored)
			if got != tt.want {
				t.Errorf("GoalStatus(%d, %d, %q) = %q, want %q", tt.current, tt.target, tt.stored, got, tt.want)
			}
		})
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    int
	}{
		{"zero", 0, 1000, 0},
		{"half", 500, 1000, 50},
		{"rounds_to_nearest", 333, 1000, 33},
		{"rounds_up", 335, 1000, 34},
		{"full", 1000, 1000, 100},
		{"clamped_above", 1500, 1000, 100},
		{"clamped_below", -50, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GoalProgress(decimal.NewFromFloat(tt.current), decimal.NewFromFloat(tt.target))
			if got == nil {
				t.Fatalf("GoalProgress(%v, %v) = nil, want %d", tt.current, tt.target, tt.want)
			}
			if *got != tt.want {
				t.Errorf("GoalProgress(%v, %v) = %d, want %d", tt.current, tt.target, *got, tt.want)
			}
		})
	}

	t.Run("nil_when_target_not_positive", func(t *testing.T) {
		if got := GoalProgress(decimal.NewFromInt(10), decimal.Zero); got != nil {
			t.Errorf("expected nil for zero target, got %d", *got)
		}
		if got := GoalProgress(decimal.NewFromInt(10), decimal.NewFromInt(-5)); got != nil {
			t.Errorf("expected nil for negative target, got %d", *got)
		}
	})

	t.Run("monotonic", func(t *testing.T) {
		target := decimal.NewFromInt(777)
		prev := -1
		for current := int64(0); current <= 900; current += 50 {
			got := GoalProgress(decimal.NewFromInt(current), target)
			if *got < prev {
				t.Fatalf("progress decreased from %d to %d at current=%d", prev, *got, current)
			}
			prev = *got
		}
	})
}

func TestApplyBudget(t *testing.T) {
	b := &models.Budget{Amount: decimal.NewFromInt(100)}
	ApplyBudget(b, decimal.NewFromInt(120))

	if !b.Spent.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected spent 120, got %s", b.Spent)
	}
	if !b.Remaining.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("expected remaining -20, got %s", b.Remaining)
	}
}
