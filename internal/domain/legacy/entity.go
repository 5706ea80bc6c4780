package legacy

import "time"

// Attendance is a row of the old Employee_Attendance table. Clock columns are
// MySQL TIME values ("HH:MM:SS") on the shift date.
type Attendance struct {
	ID                int64
	EmployeeID        int64
	AttendanceDate    time.Time
	CheckIn           *string
	CheckOut          *string
	Status            string
	LateByMinutes     int
	TotalBreakMinutes int
	GrossMinutes      int
	NetMinutes        int
	OvertimeMinutes   int
	DeviceInfo        *string
	IPAddress         *string
}

// Break is a row of the old Employee_Breaks table
type Break struct {
	ID              int64
	AttendanceID    int64
	BreakType       string
	Start           *string
	End             *string
	DurationMinutes int
	Reason          *string
}
