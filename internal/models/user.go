package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Role is a closed set; anything else is rejected by validation.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ReservedUsername may never be registered; it addresses the caller's own
// profile on the /users/me endpoint.
const ReservedUsername = "me"

// User represents a registered account.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string `json:"username" gorm:"uniqueIndex;type:varchar(150)" validate:"required,max=150,username"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(254)" validate:"required,email,max=254"`
	FirstName string `json:"first_name" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=user moderator admin"`
	// Password is only set for the bootstrap admin account. Regular users
	// authenticate with emailed confirmation codes, never a password.
	Password string `json:"-" gorm:"type:varchar(255)"`
	// LastLogin and CodeIssuedAt are part of the confirmation-code
	// fingerprint: stamping either invalidates outstanding codes.
	LastLogin    time.Time `json:"-"`
	CodeIssuedAt time.Time `json:"-"`
	gorm.Model   `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
