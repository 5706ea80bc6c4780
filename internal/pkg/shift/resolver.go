// Package shift resolves night-shift work dates, punctuality and worked time.
//
// The shift runs 21:00 to 06:00 the next morning, so a single shift spans two
// calendar dates. Every attendance record is keyed by one "shift work-date",
// and all date/time boundaries used by the rest of the application live here.
//
// All functions are pure and safe for concurrent use. Callers must pass
// well-formed clock events (hour in [0,23], minute in [0,59]); out-of-range
// values are not validated.
package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinutesPerDay       = 1440
	ShiftStartMinute    = 21 * 60    // 21:00
	LateAfterMinute     = 22*60 + 15 // 22:15, end of the grace period
	MorningCutoffMinute = 6 * 60     // 06:00, next calendar day
	ExpectedWorkMinutes = 9 * 60     // 9 hours
	morningCutoffHour   = MorningCutoffMinute / 60
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
)

// ClockEvent is a wall-clock reading plus the calendar date it was observed on.
type ClockEvent struct {
	Date   time.Time // midnight of the observed calendar date
	Hour   int
	Minute int
	Second int
}

// AttendanceDecision is the outcome of a check-in.
type AttendanceDecision struct {
	ShiftDate     time.Time
	Status        Status
	OnTime        bool
	LateByMinutes int
}

// WorkSpan is the outcome of a check-out.
type WorkSpan struct {
	GrossMinutes    int
	NetMinutes      int
	OvertimeMinutes int
	OvertimeHours   decimal.Decimal
}

// EventAt converts a timestamp into a ClockEvent in the timestamp's own location.
func EventAt(t time.Time) ClockEvent {
	return ClockEvent{
		Date:   DateOf(t),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// DateOf truncates t to midnight of its calendar date, keeping its location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (e ClockEvent) minuteOfDay() int {
	return e.Hour*60 + e.Minute
}

// ResolveShiftDate returns the shift work-date an event belongs to. Events
// before 06:00 belong to the shift that started the previous evening.
func ResolveShiftDate(e ClockEvent) time.Time {
	if e.Hour < morningCutoffHour {
		return e.Date.AddDate(0, 0, -1)
	}
	return e.Date
}

// CurrentShiftDate is ResolveShiftDate applied to t.
func CurrentShiftDate(t time.Time) time.Time {
	return ResolveShiftDate(EventAt(t))
}

// ClassifyCheckIn decides punctuality for a check-in event.
//
// Check-ins outside the 21:00-06:00 window are accepted as on time; use
// InShiftWindow to detect them.
func ClassifyCheckIn(e ClockEvent) AttendanceDecision {
	total := e.minuteOfDay()
	decision := AttendanceDecision{
		ShiftDate: ResolveShiftDate(e),
		Status:    StatusPresent,
		OnTime:    true,
	}

	switch {
	case total >= LateAfterMinute && total <= MinutesPerDay-1:
		decision.Status = StatusLate
		decision.OnTime = false
		decision.LateByMinutes = total - LateAfterMinute
	case total >= 0 && total <= MorningCutoffMinute:
		// minutes since 22:15 the previous night
		decision.Status = StatusLate
		decision.OnTime = false
		decision.LateByMinutes = (MinutesPerDay - LateAfterMinute) + total
	case total >= ShiftStartMinute && total < LateAfterMinute:
		// on time, defaults apply
	}

	return decision
}

// InShiftWindow reports whether e falls inside 21:00-06:00.
func InShiftWindow(e ClockEvent) bool {
	total := e.minuteOfDay()
	return total >= ShiftStartMinute || total <= MorningCutoffMinute
}

// ComputeWorkSpan computes worked minutes for a check-in/check-out pair.
// A night check-in (at or after 21:00) whose check-out clock time is earlier
// is treated as a next-day check-out.
func ComputeWorkSpan(checkIn, checkOut ClockEvent, breakMinutes int) WorkSpan {
	in := checkIn.minuteOfDay()
	out := checkOut.minuteOfDay()

	var gross int
	if in < ShiftStartMinute {
		gross = out - in
	} else {
		diff := out - in
		if diff >= 0 {
			gross = diff
		} else {
			gross = (MinutesPerDay - in) + out
		}
	}
	gross = max(0, gross)

	net := max(0, gross-breakMinutes)
	overtime := max(0, net-ExpectedWorkMinutes)

	return WorkSpan{
		GrossMinutes:    gross,
		NetMinutes:      net,
		OvertimeMinutes: overtime,
		OvertimeHours:   OvertimeHours(overtime),
	}
}

// OvertimeHours converts minutes to hours rounded to two decimal places.
func OvertimeHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}

// ShiftEnd returns the 06:00 end of the shift that started on shiftDate.
func ShiftEnd(shiftDate time.Time) time.Time {
	return DateOf(shiftDate).AddDate(0, 0, 1).Add(MorningCutoffMinute * time.Minute)
}

// IsWeekend reports whether a shift date falls on Saturday or Sunday.
func IsWeekend(shiftDate time.Time) bool {
	wd := shiftDate.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
