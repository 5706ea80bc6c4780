package attendance

import (
	"strings"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
)

const maxBreakMinutes = 12 * 60

type CheckInRequest struct {
	DeviceInfo *string `json:"device_info,omitempty"`

	// Set by handler from the request
	IPAddress string `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DeviceInfo != nil && len(*r.DeviceInfo) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "device_info",
			Message: "device_info must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Remarks *string `json:"remarks,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Remarks != nil && len(*r.Remarks) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordBreakRequest records a finished break. Either duration_minutes or
// both break_start_time and break_end_time (RFC3339) must be given.
type RecordBreakRequest struct {
	BreakType       string  `json:"break_type"`
	DurationMinutes *int    `json:"break_duration_minutes,omitempty"`
	StartTime       *string `json:"break_start_time,omitempty"`
	EndTime         *string `json:"break_end_time,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

// ResolvedBreak is a RecordBreakRequest after parsing.
type ResolvedBreak struct {
	Type      BreakType
	StartTime *time.Time
	EndTime   *time.Time
	Minutes   int
}

// Resolve parses the request. A provided positive duration wins over the
// start/end times; otherwise the duration is the whole minutes between them.
func (r *RecordBreakRequest) Resolve() (ResolvedBreak, error) {
	var errs validator.ValidationErrors
	var resolved ResolvedBreak

	if validator.IsEmpty(r.BreakType) {
		errs.Add("break_type", "break_type is required")
	} else if bt, ok := ParseBreakType(r.BreakType); !ok {
		errs.Add("break_type", "break_type must be one of: Smoke, Dinner, Washroom, Prayer, Other")
	} else {
		resolved.Type = bt
	}

	if r.StartTime != nil {
		if t, ok := validator.IsValidDateTime(*r.StartTime); ok {
			resolved.StartTime = &t
		} else {
			errs.Add("break_start_time", "break_start_time must be an ISO8601 timestamp")
		}
	}
	if r.EndTime != nil {
		if t, ok := validator.IsValidDateTime(*r.EndTime); ok {
			resolved.EndTime = &t
		} else {
			errs.Add("break_end_time", "break_end_time must be an ISO8601 timestamp")
		}
	}

	switch {
	case r.DurationMinutes != nil && *r.DurationMinutes > 0:
		resolved.Minutes = *r.DurationMinutes
	case r.DurationMinutes != nil && *r.DurationMinutes < 0:
		errs.Add("break_duration_minutes", "break_duration_minutes must not be negative")
	case resolved.StartTime != nil && resolved.EndTime != nil:
		if !resolved.EndTime.After(*resolved.StartTime) {
			errs.Add("break_end_time", "break_end_time must be after break_start_time")
		} else {
			resolved.Minutes = int(resolved.EndTime.Sub(*resolved.StartTime) / time.Minute)
		}
	case r.StartTime == nil && r.EndTime == nil:
		errs.Add("break_duration_minutes", "break_duration_minutes or break_start_time and break_end_time are required")
	case r.StartTime == nil || r.EndTime == nil:
		errs.Add("break_end_time", "break_start_time and break_end_time must be given together")
	}

	if resolved.Minutes > maxBreakMinutes {
		errs.Add("break_duration_minutes", "break_duration_minutes must not exceed 720")
	}

	if r.Reason != nil && len(*r.Reason) > 255 {
		errs.Add("reason", "reason must not exceed 255 characters")
	}

	if len(errs) > 0 {
		return ResolvedBreak{}, errs
	}
	return resolved, nil
}

func (r *RecordBreakRequest) Validate() error {
	_, err := r.Resolve()
	return err
}

type BreakSummaryResponse struct {
	TotalBreaksTaken          int `json:"total_breaks_taken"`
	TotalBreakDurationMinutes int `json:"total_break_duration_minutes"`
	SmokeBreakCount           int `json:"smoke_break_count"`
	SmokeBreakMinutes         int `json:"smoke_break_duration_minutes"`
	DinnerBreakCount          int `json:"dinner_break_count"`
	DinnerBreakMinutes        int `json:"dinner_break_duration_minutes"`
	WashroomBreakCount        int `json:"washroom_break_count"`
	WashroomBreakMinutes      int `json:"washroom_break_duration_minutes"`
	PrayerBreakCount          int `json:"prayer_break_count"`
	PrayerBreakMinutes        int `json:"prayer_break_duration_minutes"`
}

type AttendanceResponse struct {
	ID                string               `json:"id,omitempty"`
	EmployeeID        string               `json:"employee_id"`
	EmployeeCode      string               `json:"employee_code,omitempty"`
	EmployeeName      string               `json:"employee_name,omitempty"`
	AttendanceDate    string               `json:"attendance_date"`
	CheckInTime       *string              `json:"check_in_time"`
	CheckOutTime      *string              `json:"check_out_time"`
	Status            string               `json:"status"`
	OnTime            bool                 `json:"on_time"`
	LateByMinutes     int                  `json:"late_by_minutes"`
	Breaks            BreakSummaryResponse `json:"breaks"`
	GrossWorkingTime  int                  `json:"gross_working_time_minutes"`
	NetWorkingTime    int                  `json:"net_working_time_minutes"`
	OvertimeMinutes   int                  `json:"overtime_minutes"`
	OvertimeHours     string               `json:"overtime_hours"`
	DeviceInfo        *string              `json:"device_info,omitempty"`
	IPAddress         *string              `json:"ip_address,omitempty"`
	Remarks           *string              `json:"remarks,omitempty"`
	BreakLog          []BreakResponse      `json:"break_log,omitempty"`
	IsGeneratedAbsent bool                 `json:"is_generated_absent,omitempty"`
}

type BreakResponse struct {
	ID              string  `json:"id"`
	AttendanceID    string  `json:"attendance_id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	AttendanceDate  string  `json:"attendance_date,omitempty"`
	BreakType       string  `json:"break_type"`
	StartTime       *string `json:"break_start_time"`
	EndTime         *string `json:"break_end_time"`
	DurationMinutes int     `json:"break_duration_minutes"`
	Reason          *string `json:"reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type TodayAttendanceResponse struct {
	ShiftDate  string              `json:"shift_date"`
	CheckedIn  bool                `json:"checked_in"`
	CheckedOut bool                `json:"checked_out"`
	Attendance *AttendanceResponse `json:"attendance"`
}

// MonthlyFilter selects a calendar month of shift dates, "YYYY-MM". Empty means the current month.
type MonthlyFilter struct {
	Month string `json:"month"`
}

func (f *MonthlyFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != "" {
		if _, ok := validator.IsValidMonth(f.Month); !ok {
			errs.Add("month", "month must be in YYYY-MM format")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlySummary struct {
	TotalDays            int    `json:"total_days"`
	PresentDays          int    `json:"present_days"`
	LateDays             int    `json:"late_days"`
	AbsentDays           int    `json:"absent_days"`
	TotalLateMinutes     int    `json:"total_late_minutes"`
	TotalNetMinutes      int    `json:"total_net_working_minutes"`
	TotalOvertimeMinutes int    `json:"total_overtime_minutes"`
	TotalOvertimeHours   string `json:"total_overtime_hours"`
}

type MonthlyAttendanceResponse struct {
	Month       string               `json:"month"`
	Summary     MonthlySummary       `json:"summary"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, check_in_time, check_out_time, status, late_by_minutes, overtime_minutes
	SortOrder string `json:"sort_order"` // asc, desc
}

func validatePagination(errs *validator.ValidationErrors, page, limit *int) {
	if *page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if *page == 0 {
		*page = 1
	}

	if *limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if *limit == 0 {
		*limit = 20
	}
	if *limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}
}

func validateOptionalDate(errs *validator.ValidationErrors, field string, value *string) {
	if value == nil || *value == "" {
		return
	}
	if _, ok := validator.IsValidDate(*value); !ok {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
	}
}

func validateDateRange(errs *validator.ValidationErrors, start, end *string) {
	if start == nil || end == nil || *start == "" || *end == "" {
		return
	}
	s, okStart := validator.IsValidDate(*start)
	e, okEnd := validator.IsValidDate(*end)
	if okStart && okEnd && e.Before(s) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	validatePagination(&errs, &f.Page, &f.Limit)

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	if f.Status != nil && *f.Status != "" && !IsValidStatus(*f.Status) {
		errs.Add("status", "status must be one of: Present, Late, Absent")
	}

	validateOptionalDate(&errs, "date", f.Date)
	validateOptionalDate(&errs, "start_date", f.StartDate)
	validateOptionalDate(&errs, "end_date", f.EndDate)
	validateDateRange(&errs, f.StartDate, f.EndDate)

	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_name", "check_in_time", "check_out_time", "status", "late_by_minutes", "overtime_minutes"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs.Add("sort_by", "sort_by must be one of: "+strings.Join(validSortFields, ", "))
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BoardFilter selects the full roster for one shift date, absent employees included.
type BoardFilter struct {
	Date   *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to the current shift date
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *BoardFilter) Validate() error {
	var errs validator.ValidationErrors

	validatePagination(&errs, &f.Page, &f.Limit)
	validateOptionalDate(&errs, "date", f.Date)

	if f.Status != nil && *f.Status != "" && !IsValidStatus(*f.Status) {
		errs.Add("status", "status must be one of: Present, Late, Absent")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string `json:"check_out_time,omitempty"` // RFC3339
	Remarks      *string `json:"remarks,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.CheckInTime == nil && r.CheckOutTime == nil && r.Remarks == nil {
		errs.Add("body", "at least one of check_in_time, check_out_time, remarks is required")
	}

	var in, out time.Time
	var okIn, okOut bool
	if r.CheckInTime != nil {
		if in, okIn = validator.IsValidDateTime(*r.CheckInTime); !okIn {
			errs.Add("check_in_time", "check_in_time must be an ISO8601 timestamp")
		}
	}
	if r.CheckOutTime != nil {
		if out, okOut = validator.IsValidDateTime(*r.CheckOutTime); !okOut {
			errs.Add("check_out_time", "check_out_time must be an ISO8601 timestamp")
		}
	}
	if okIn && okOut && !out.After(in) {
		errs.Add("check_out_time", "check_out_time must be after check_in_time")
	}

	if r.Remarks != nil && len(*r.Remarks) > 500 {
		errs.Add("remarks", "remarks must not exceed 500 characters")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateAbsentResponse struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	Created    int    `json:"created"`
}

type BreakFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	BreakType  *string `json:"break_type,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *BreakFilter) Validate() error {
	var errs validator.ValidationErrors

	validatePagination(&errs, &f.Page, &f.Limit)

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.BreakType != nil && *f.BreakType != "" {
		bt, ok := ParseBreakType(*f.BreakType)
		if !ok {
			errs.Add("break_type", "break_type must be one of: Smoke, Dinner, Washroom, Prayer, Other")
		} else {
			canonical := string(bt)
			f.BreakType = &canonical
		}
	}

	validateOptionalDate(&errs, "start_date", f.StartDate)
	validateOptionalDate(&errs, "end_date", f.EndDate)
	validateDateRange(&errs, f.StartDate, f.EndDate)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListBreakResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Breaks     []BreakResponse `json:"breaks"`
}
