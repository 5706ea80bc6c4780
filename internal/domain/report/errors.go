package report

import "errors"

var (
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrDateRangeTooLarge = errors.New("date range must not exceed 366 days")
	ErrNoDataFound       = errors.New("no data found for the specified criteria")
	ErrExportFailed      = errors.New("failed to export report")
)
