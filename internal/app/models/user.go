package models

import "time"

// RoleType represents a user role
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAdmin   RoleType = "ADMIN"
)

// User represents an account known to the portal. Authentication happens in the
// external identity layer; the portal only needs a row to own documents and to
// resolve display names.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	RoleType     RoleType  `json:"roleType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.RoleType == RoleAdmin
}
