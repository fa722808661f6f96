package domain

import "time"

type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleManager  UserRole = "manager"
)

type User struct {
	ID           int32      `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Active       bool       `json:"active"`
	CreatedBy    *int32     `json:"created_by,omitempty"`
	PhotoURL     string     `json:"photo_url,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
	UpdatedOn    *time.Time `json:"updated_on,omitempty"`
}
