package report

import (
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
)

const maxRangeDays = 366

// ========================================
// PERIOD FILTER (shared by every report)
// ========================================

type PeriodRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
}

// Validate checks the dates and the employee id. Both dates are shift dates (YYYY-MM-DD).
func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if startOK && endOK {
		if end.Before(start) {
			errs.Add("end_date", ErrInvalidDateRange.Error())
		} else if end.Sub(start).Hours()/24 > maxRangeDays {
			errs.Add("end_date", ErrDateRangeTooLarge.Error())
		}
	}

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	return errs.Err()
}

// ========================================
// ATTENDANCE SUMMARY
// ========================================

type AttendanceSummaryReport struct {
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	GeneratedAt string                 `json:"generated_at"`
	Employees   []AttendanceSummaryRow `json:"employees"`
	Totals      AttendanceSummaryTotal `json:"totals"`
}

type AttendanceSummaryRow struct {
	EmployeeID        string  `json:"employee_id"`
	EmployeeCode      string  `json:"employee_code"`
	EmployeeName      string  `json:"employee_name"`
	Department        *string `json:"department,omitempty"`
	PresentDays       int     `json:"present_days"` // on time + late
	LateDays          int     `json:"late_days"`
	AbsentDays        int     `json:"absent_days"`
	TotalLateMinutes  int     `json:"total_late_minutes"`
	TotalBreaks       int     `json:"total_breaks"`
	TotalBreakMinutes int     `json:"total_break_minutes"`
	GrossMinutes      int     `json:"gross_minutes"`
	NetMinutes        int     `json:"net_minutes"`
	OvertimeMinutes   int     `json:"overtime_minutes"`
	OvertimeHours     string  `json:"overtime_hours"`
}

type AttendanceSummaryTotal struct {
	Employees        int    `json:"employees"`
	PresentDays      int    `json:"present_days"`
	LateDays         int    `json:"late_days"`
	AbsentDays       int    `json:"absent_days"`
	TotalLateMinutes int    `json:"total_late_minutes"`
	NetMinutes       int    `json:"net_minutes"`
	OvertimeMinutes  int    `json:"overtime_minutes"`
	OvertimeHours    string `json:"overtime_hours"`
}

// ========================================
// OVERTIME REPORT
// ========================================

type OvertimeReport struct {
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	GeneratedAt string        `json:"generated_at"`
	Employees   []OvertimeRow `json:"employees"`
	Summary     OvertimeTotal `json:"summary"`
}

type OvertimeRow struct {
	EmployeeID      string `json:"employee_id"`
	EmployeeCode    string `json:"employee_code"`
	EmployeeName    string `json:"employee_name"`
	OvertimeDays    int    `json:"overtime_days"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	OvertimeHours   string `json:"overtime_hours"`
	AveragePerDay   string `json:"average_overtime_hours_per_day"`
}

type OvertimeTotal struct {
	TotalOvertimeMinutes int    `json:"total_overtime_minutes"`
	TotalOvertimeHours   string `json:"total_overtime_hours"`
	TotalOvertimeDays    int    `json:"total_overtime_days"`
	AveragePerDay        string `json:"average_overtime_hours_per_day"`
}

// ExportFile is a generated report ready for download
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
