package models

import "github.com/shopspring/decimal"

// Budget represents a spending ceiling for a category.
//
// Spent and Remaining are derived from the owner's expense transactions on
// every read and are never persisted.
type Budget struct {
	Base
	UserID      string          `gorm:"not null;index" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency    string          `gorm:"type:varchar(3);not null;default:EUR" json:"currency"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	PeriodStart *string         `gorm:"type:varchar(10)" json:"period_start"`
	PeriodEnd   *string         `gorm:"type:varchar(10)" json:"period_end"`

	// Derived, not persisted.
	Spent     decimal.Decimal `gorm:"-" json:"spent"`
	Remaining decimal.Decimal `gorm:"-" json:"remaining"`
}
