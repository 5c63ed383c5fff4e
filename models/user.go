package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleAuthor   UserRole = "author"
	RoleReviewer UserRole = "reviewer"
)

type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Role      UserRole       `json:"role" gorm:"default:'author'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Actor is the authenticated identity performing an operation, as extracted
// from the JWT claims by the auth middleware.
type Actor struct {
	ID   uint     `json:"id"`
	Role UserRole `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
