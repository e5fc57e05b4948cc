package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleHR       Role = "hr"       // People operations
	RoleManager  Role = "manager"  // Sees own reports' attendance
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	Position     *string
	Department   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManagement checks if user may access management-only views
// (all-attendance history, live status).
func (u *User) IsManagement() bool {
	return IsManagementRole(u.Role)
}

// IsManagementRole reports whether role grants management access.
func IsManagementRole(role Role) bool {
	return role == RoleAdmin || role == RoleHR || role == RoleManager
}
