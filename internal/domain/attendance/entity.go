package attendance

import (
	"strings"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/shift"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent = Status(shift.StatusPresent)
	StatusLate    = Status(shift.StatusLate)
	StatusAbsent  Status = "Absent"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPresent, StatusLate, StatusAbsent:
		return true
	}
	return false
}

type BreakType string

const (
	BreakSmoke    BreakType = "Smoke"
	BreakDinner   BreakType = "Dinner"
	BreakWashroom BreakType = "Washroom"
	BreakPrayer   BreakType = "Prayer"
	BreakOther    BreakType = "Other"
)

var breakTypes = []BreakType{BreakSmoke, BreakDinner, BreakWashroom, BreakPrayer, BreakOther}

// ParseBreakType matches s case-insensitively against the known break types.
func ParseBreakType(s string) (BreakType, bool) {
	s = strings.TrimSpace(s)
	for _, bt := range breakTypes {
		if strings.EqualFold(s, string(bt)) {
			return bt, true
		}
	}
	return "", false
}

// BreakCounters are the per-type break totals stored on an attendance record.
type BreakCounters struct {
	TotalBreaks     int
	TotalMinutes    int
	SmokeCount      int
	SmokeMinutes    int
	DinnerCount     int
	DinnerMinutes   int
	WashroomCount   int
	WashroomMinutes int
	PrayerCount     int
	PrayerMinutes   int
}

// Add records one break. Other breaks only count towards the totals.
func (c *BreakCounters) Add(t BreakType, minutes int) {
	c.TotalBreaks++
	c.TotalMinutes += minutes

	switch t {
	case BreakSmoke:
		c.SmokeCount++
		c.SmokeMinutes += minutes
	case BreakDinner:
		c.DinnerCount++
		c.DinnerMinutes += minutes
	case BreakWashroom:
		c.WashroomCount++
		c.WashroomMinutes += minutes
	case BreakPrayer:
		c.PrayerCount++
		c.PrayerMinutes += minutes
	}
}

type Attendance struct {
	ID              string
	EmployeeID      string
	AttendanceDate  time.Time
	CheckInTime     *time.Time
	CheckOutTime    *time.Time
	Status          Status
	OnTime          bool
	LateByMinutes   int
	Breaks          BreakCounters
	GrossMinutes    int
	NetMinutes      int
	OvertimeMinutes int
	OvertimeHours   decimal.Decimal
	DeviceInfo      *string
	IPAddress       *string
	Remarks         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join
	EmployeeCode  string
	EmployeeName  string
	EmployeeEmail string
	BreakLog      []Break
}

// IsOpen reports whether the employee has checked in but not out.
func (a Attendance) IsOpen() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}

func (a *Attendance) ApplyDecision(d shift.AttendanceDecision) {
	a.AttendanceDate = d.ShiftDate
	a.Status = Status(d.Status)
	a.OnTime = d.OnTime
	a.LateByMinutes = d.LateByMinutes
}

func (a *Attendance) ApplyWorkSpan(s shift.WorkSpan) {
	a.GrossMinutes = s.GrossMinutes
	a.NetMinutes = s.NetMinutes
	a.OvertimeMinutes = s.OvertimeMinutes
	a.OvertimeHours = s.OvertimeHours
}

// Recompute re-derives punctuality and worked time from the stored clock
// times, read as wall clock in loc.
func (a *Attendance) Recompute(loc *time.Location) {
	if a.CheckInTime == nil {
		return
	}
	in := shift.EventAt(a.CheckInTime.In(loc))
	a.ApplyDecision(shift.ClassifyCheckIn(in))
	if a.CheckOutTime != nil {
		out := shift.EventAt(a.CheckOutTime.In(loc))
		a.ApplyWorkSpan(shift.ComputeWorkSpan(in, out, a.Breaks.TotalMinutes))
	} else {
		a.ApplyWorkSpan(shift.WorkSpan{OvertimeHours: decimal.Zero})
	}
}

// NewAbsent builds the zeroed record used for a shift date with no check-in.
func NewAbsent(employeeID string, shiftDate time.Time) Attendance {
	return Attendance{
		EmployeeID:     employeeID,
		AttendanceDate: shiftDate,
		Status:         StatusAbsent,
		OnTime:         false,
		OvertimeHours:  decimal.Zero,
	}
}

type Break struct {
	ID              string
	AttendanceID    string
	EmployeeID      string
	Type            BreakType
	StartTime       *time.Time
	EndTime         *time.Time
	DurationMinutes int
	Reason          *string
	CreatedAt       time.Time

	// Join
	EmployeeName   string
	AttendanceDate time.Time
}
