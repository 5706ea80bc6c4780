package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out
	ErrAlreadyCheckedIn  = errors.New("already checked in for this shift")
	ErrNoActiveCheckIn   = errors.New("no active check in found for this shift")
	ErrAlreadyCheckedOut = errors.New("already checked out for this shift")

	// Breaks
	ErrInvalidBreakType     = errors.New("invalid break type")
	ErrInvalidBreakDuration = errors.New("break duration must be positive")

	// General errors
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrEmployeeIDRequired  = errors.New("employee id is required")
	ErrUnauthorized        = errors.New("unauthorized to access this attendance record")
	ErrCheckOutBeforeEntry = errors.New("check_out_time must be after check_in_time")
)
