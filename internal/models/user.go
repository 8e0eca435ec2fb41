package models

import (
	"slices"
	"time"

	"gorm.io/gorm"
)

// UserStatus represents the lifecycle status of a user profile.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
	UserStatusDeleted  UserStatus = "deleted"
)

// RoleAdmin marks a user as an administrator.
const RoleAdmin = "admin"

// User represents a user profile. The primary key is the uid issued by the
// external identity provider, not a locally generated id.
type User struct {
	UID         string         `gorm:"primaryKey" json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	PhotoURL    string         `json:"photo_url"`
	Locale      string         `json:"locale"`
	Timezone    string         `json:"timezone"`
	Currency    string         `gorm:"type:varchar(3);not null;default:EUR" json:"currency"`
	Roles       []string       `gorm:"serializer:json" json:"roles"`
	Status      UserStatus     `gorm:"not null;default:active" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return slices.Contains(u.Roles, RoleAdmin)
}
