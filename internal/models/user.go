// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole controls access to administrative endpoints.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// UserTheme is the client UI preference persisted per user.
type UserTheme string

const (
	UserThemeLight UserTheme = "light"
	UserThemeDark  UserTheme = "dark"
)

// User represents an account in the Aurex application.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null;size:320" json:"email"`
	PasswordHash  string         `gorm:"size:255" json:"-"`
	Name          string         `json:"name"`
	Role          UserRole       `gorm:"type:varchar(16);default:user;not null" json:"role"`
	EmailVerified bool           `gorm:"default:false;not null" json:"email_verified"`
	Theme         UserTheme      `gorm:"type:varchar(16);default:light;not null" json:"theme"`
	LastSignedIn  time.Time      `json:"last_signed_in"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
