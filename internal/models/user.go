package models

import (
	"time"
)

const (
	RoleAdmin     = "ADMIN"
	RoleEditor    = "EDITOR"
	RoleModerator = "MODERATOR"
	RoleMember    = "MEMBER"
)

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleModerator, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"`
	Role         string `json:"role" gorm:"type:varchar(20);default:'MEMBER'"`
	Enabled      bool   `json:"enabled" gorm:"default:true"`

	LastLoginAt *time.Time `json:"last_login_at"`

	// Remember-me credential: the raw token lives here, its signed form in
	// the browser cookie. One active token per user; renewal overwrites.
	RememberToken     string     `json:"-" gorm:"type:varchar(255);index"`
	RememberExpiresAt *time.Time `json:"-"`

	AvatarPath string `json:"avatar_path" gorm:"type:varchar(255)"`
	Bio        string `json:"bio" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionUser is the snapshot of a user stored in the session payload and
// carried through the request context as the resolved identity.
type SessionUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Snapshot returns the session snapshot of the user.
func (u *User) Snapshot() SessionUser {
	return SessionUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
