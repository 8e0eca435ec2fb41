package models

// CategoryType represents the type of category.
type CategoryType string

const (
	CategoryTypeExpense  CategoryType = "expense"
	CategoryTypeIncome   CategoryType = "income"
	CategoryTypeTransfer CategoryType = "transfer"
)

// EntityStatus is the active/archived lifecycle shared by categories and goals.
type EntityStatus string

const (
	EntityStatusActive   EntityStatus = "active"
	EntityStatusArchived EntityStatus = "archived"
)

// Category represents a transaction category. Categories form at most a
// two-level hierarchy through ParentID; NameLower backs the per-owner
// case-insensitive uniqueness rule.
type Category struct {
	Base
	UserID    string       `gorm:"not null;index" json:"user_id"`
	Name      string       `gorm:"not null" json:"name"`
	NameLower string       `gorm:"not null;index" json:"-"`
	Type      CategoryType `gorm:"not null;default:expense" json:"type"`
	Colour    *string      `json:"colour"`
	ParentID  *string      `gorm:"type:uuid;index" json:"parent_id"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`
	Status    EntityStatus `gorm:"not null;default:active" json:"status"`

	// Children is only populated by the tree endpoint; it is not a GORM
	// relationship so that flat queries stay flat.
	Children []*Category `gorm:"-" json:"children,omitempty"`
}
