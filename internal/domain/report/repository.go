package report

import "context"

// EmployeeTotals is the raw per-employee aggregation over a period of shift dates
type EmployeeTotals struct {
	EmployeeID      string
	EmployeeCode    string
	EmployeeName    string
	Department      *string
	PresentDays     int
	LateDays        int
	AbsentDays      int
	LateMinutes     int
	Breaks          int
	BreakMinutes    int
	GrossMinutes    int
	NetMinutes      int
	OvertimeMinutes int
	OvertimeDays    int
}

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// GetEmployeeTotals aggregates attendance rows with start <= attendance_date <= end,
	// optionally for a single employee. Ordered by employee name.
	GetEmployeeTotals(ctx context.Context, startDate, endDate string, employeeID *string) ([]EmployeeTotals, error)
}
