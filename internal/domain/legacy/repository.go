package legacy

import "context"

// Repository reads the previous system's MySQL tables. Dates are "YYYY-MM-DD".
type Repository interface {
	ListAttendance(ctx context.Context, from, to string) ([]Attendance, error)

	// ListBreaks returns breaks of attendance rows in the range keyed by attendance id
	ListBreaks(ctx context.Context, from, to string) (map[int64][]Break, error)
}
