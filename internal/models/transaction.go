package models

import "github.com/shopspring/decimal"

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense record.
// Date is a calendar date stored as YYYY-MM-DD with no time component;
// ISO date strings compare lexicographically, so range filters work
// directly on the column.
type Transaction struct {
	Base
	UserID      string          `gorm:"not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date        string          `gorm:"type:varchar(10);not null;index" json:"date"`
	Description string          `json:"description"`
	CategoryID  *string         `gorm:"type:uuid;index" json:"category_id"`
}
