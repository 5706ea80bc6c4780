package attendance

import (
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
)

// timePtrToString formats t in loc, nil stays nil.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	format := t.In(loc).Format(time.RFC3339)
	return &format
}

func (a *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return MapAttendance(att, a.loc)
}

func (a *AttendanceServiceImpl) mapBreakToResponse(b attendance.Break) attendance.BreakResponse {
	return MapBreak(b, a.loc)
}

// MapAttendance builds the API view of a record with times rendered in loc.
func MapAttendance(att attendance.Attendance, loc *time.Location) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:             att.ID,
		EmployeeID:     att.EmployeeID,
		EmployeeCode:   att.EmployeeCode,
		EmployeeName:   att.EmployeeName,
		AttendanceDate: att.AttendanceDate.Format(validator.DateLayout),
		CheckInTime:    timePtrToString(att.CheckInTime, loc),
		CheckOutTime:   timePtrToString(att.CheckOutTime, loc),
		Status:         string(att.Status),
		OnTime:         att.OnTime,
		LateByMinutes:  att.LateByMinutes,
		Breaks: attendance.BreakSummaryResponse{
			TotalBreaksTaken:          att.Breaks.TotalBreaks,
			TotalBreakDurationMinutes: att.Breaks.TotalMinutes,
			SmokeBreakCount:           att.Breaks.SmokeCount,
			SmokeBreakMinutes:         att.Breaks.SmokeMinutes,
			DinnerBreakCount:          att.Breaks.DinnerCount,
			DinnerBreakMinutes:        att.Breaks.DinnerMinutes,
			WashroomBreakCount:        att.Breaks.WashroomCount,
			WashroomBreakMinutes:      att.Breaks.WashroomMinutes,
			PrayerBreakCount:          att.Breaks.PrayerCount,
			PrayerBreakMinutes:        att.Breaks.PrayerMinutes,
		},
		GrossWorkingTime: att.GrossMinutes,
		NetWorkingTime:   att.NetMinutes,
		OvertimeMinutes:  att.OvertimeMinutes,
		OvertimeHours:    att.OvertimeHours.StringFixed(2),
		DeviceInfo:       att.DeviceInfo,
		IPAddress:        att.IPAddress,
		Remarks:          att.Remarks,
	}

	if len(att.BreakLog) > 0 {
		resp.BreakLog = make([]attendance.BreakResponse, 0, len(att.BreakLog))
		for _, b := range att.BreakLog {
			resp.BreakLog = append(resp.BreakLog, MapBreak(b, loc))
		}
	}
	return resp
}

func MapBreak(b attendance.Break, loc *time.Location) attendance.BreakResponse {
	resp := attendance.BreakResponse{
		ID:              b.ID,
		AttendanceID:    b.AttendanceID,
		EmployeeID:      b.EmployeeID,
		EmployeeName:    b.EmployeeName,
		BreakType:       string(b.Type),
		StartTime:       timePtrToString(b.StartTime, loc),
		EndTime:         timePtrToString(b.EndTime, loc),
		DurationMinutes: b.DurationMinutes,
		Reason:          b.Reason,
	}
	if !b.AttendanceDate.IsZero() {
		resp.AttendanceDate = b.AttendanceDate.Format(validator.DateLayout)
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.In(loc).Format(time.RFC3339)
	}
	return resp
}
