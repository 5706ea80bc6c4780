package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Dates passed in are shift work-dates.
type AttendanceRepository interface {
	// Create inserts a record. Returns ErrAlreadyCheckedIn when one already exists for the shift date.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// CreateAbsentBulk inserts absent rows, skipping dates that already have a record.
	CreateAbsentBulk(ctx context.Context, records []Attendance) (int, error)

	// Upsert inserts or replaces the record for (employee_id, attendance_date).
	Upsert(ctx context.Context, attendance Attendance) (created bool, err error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when there is no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, attendance Attendance) error

	// AddBreak increments the break counters of an attendance record.
	AddBreak(ctx context.Context, id string, breakType BreakType, minutes int) error

	Delete(ctx context.Context, id string) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployee returns an employee's records between two dates inclusive, oldest first.
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListOpenCheckedInBefore returns records still open whose check-in is older than t.
	ListOpenCheckedInBefore(ctx context.Context, t time.Time) ([]Attendance, error)
}

type BreakRepository interface {
	Create(ctx context.Context, b Break) (Break, error)
	ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) (map[string][]Break, error)
	List(ctx context.Context, filter BreakFilter) ([]Break, int64, error)
}
