package models

import (
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // bcrypt hash
	Role        string    `gorm:"size:20;default:'member';not null" json:"role"`
	IsSuspended bool      `gorm:"default:false" json:"is_suspended"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserBrief is the public author shape embedded in stories and comments.
type UserBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{ID: u.ID, Name: u.Name, Role: u.Role}
}

// CanModerate reports whether the user may act on other users' stories.
func (u *User) CanModerate() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator
}

// ValidRole reports whether s is one of the assignable roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleModerator || s == RoleMember
}
