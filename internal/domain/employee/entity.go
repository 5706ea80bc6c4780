package employee

import (
	"time"
)

type Employee struct {
	ID               string
	UserID           *string
	LegacyID         *int64
	EmployeeCode     string
	FullName         string
	Email            string
	Department       *string
	Position         *string
	JoiningDate      time.Time
	ResignationDate  *time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive
}

// WasEmployedOn reports whether the employee was on staff for the given shift date.
func (e Employee) WasEmployedOn(shiftDate time.Time) bool {
	joined := time.Date(e.JoiningDate.Year(), e.JoiningDate.Month(), e.JoiningDate.Day(), 0, 0, 0, 0, shiftDate.Location())
	if shiftDate.Before(joined) {
		return false
	}
	if e.ResignationDate != nil {
		left := time.Date(e.ResignationDate.Year(), e.ResignationDate.Month(), e.ResignationDate.Day(), 0, 0, 0, 0, shiftDate.Location())
		if !shiftDate.Before(left) {
			return false
		}
	}
	return true
}
