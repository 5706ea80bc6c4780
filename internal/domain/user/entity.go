package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access including deletes
	RoleHR       Role = "hr"       // Attendance oversight and reports
	RoleEmployee Role = "employee" // Own attendance only
)

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Role         Role
	EmployeeID   *string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff reports whether the user can see everyone's attendance.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}

func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}
