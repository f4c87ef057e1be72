package models

import "time"

// Role values recognized on a user record. An empty role means a
// regular customer; only the promotion endpoint ever writes RoleAdmin.
const (
	RoleAdmin = "admin"
)

// User represents an application account. Email is the natural key:
// accounts are created on first sign-in and re-creation with the same
// email is a no-op.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Role      string    `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsAdmin reports whether the user has the administrative role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
