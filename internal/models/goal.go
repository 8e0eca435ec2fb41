package models

import "github.com/shopspring/decimal"

// GoalStatus represents the lifecycle status of a savings goal.
// Only "active" and "archived" are ever stored; "completed" is derived
// from the amounts on read and never written back.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusArchived  GoalStatus = "archived"
	GoalStatusCompleted GoalStatus = "completed"
)

// Goal represents a savings goal.
type Goal struct {
	Base
	UserID        string          `gorm:"not null;index" json:"user_id"`
	Title         string          `gorm:"not null" json:"title"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"current_amount"`
	Currency      string          `gorm:"type:varchar(3);not null;default:EUR" json:"currency"`
	CategoryID    *string         `gorm:"type:uuid;index" json:"category_id"`
	DueDate       *string         `gorm:"type:varchar(10)" json:"due_date"`
	Notes         string          `json:"notes"`
	Status        GoalStatus      `gorm:"not null;default:active" json:"status"`

	// Derived, not persisted. Nil when TargetAmount is not positive.
	Progress *int `gorm:"-" json:"progress"`
}
