package legacy

import "errors"

var (
	ErrUnknownEmployee = errors.New("legacy employee is not linked to an employee")
	ErrInvalidClock    = errors.New("invalid legacy clock value")
)
