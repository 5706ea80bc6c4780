package shift

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func event(date string, hour, minute, second int) ClockEvent {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return ClockEvent{Date: d, Hour: hour, Minute: minute, Second: second}
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestResolveShiftDate(t *testing.T) {
	t.Run("early morning hours belong to previous date", func(t *testing.T) {
		for hour := 0; hour <= 5; hour++ {
			got := ResolveShiftDate(event("2025-03-10", hour, 59, 59))
			assert.Equal(t, date("2025-03-09"), got, "hour %d", hour)
		}
	})

	t.Run("from 06:00 on events belong to same date", func(t *testing.T) {
		for hour := 6; hour <= 23; hour++ {
			got := ResolveShiftDate(event("2025-03-10", hour, 0, 0))
			assert.Equal(t, date("2025-03-10"), got, "hour %d", hour)
		}
	})

	t.Run("crosses month and year boundaries", func(t *testing.T) {
		assert.Equal(t, date("2024-12-31"), ResolveShiftDate(event("2025-01-01", 2, 30, 0)))
		assert.Equal(t, date("2024-02-29"), ResolveShiftDate(event("2024-03-01", 0, 0, 0)))
	})
}

func TestCurrentShiftDateKeepsLocation(t *testing.T) {
	loc := time.FixedZone("PKT", 5*60*60)
	now := time.Date(2025, 6, 2, 3, 15, 0, 0, loc)

	got := CurrentShiftDate(now)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestClassifyCheckIn(t *testing.T) {
	tests := []struct {
		name       string
		hour       int
		minute     int
		wantStatus Status
		wantOnTime bool
		wantLateBy int
		wantDate   string
	}{
		{"shift start", 21, 0, StatusPresent, true, 0, "2025-03-10"},
		{"last on-time minute", 22, 14, StatusPresent, true, 0, "2025-03-10"},
		{"grace boundary is late", 22, 15, StatusLate, false, 0, "2025-03-10"},
		{"late evening", 23, 0, StatusLate, false, 45, "2025-03-10"},
		{"last minute of day", 23, 59, StatusLate, false, 104, "2025-03-10"},
		{"midnight", 0, 0, StatusLate, false, 105, "2025-03-09"},
		{"early morning", 5, 59, StatusLate, false, 464, "2025-03-09"},
		{"afternoon outside window", 15, 30, StatusPresent, true, 0, "2025-03-10"},
		{"just before shift start", 20, 59, StatusPresent, true, 0, "2025-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyCheckIn(event("2025-03-10", tt.hour, tt.minute, 0))

			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantOnTime, got.OnTime)
			assert.Equal(t, tt.wantLateBy, got.LateByMinutes)
			assert.Equal(t, date(tt.wantDate), got.ShiftDate)
		})
	}
}

func TestClassifyCheckInAtSixIsLate(t *testing.T) {
	// 06:00 is still inside the early-morning late branch but keys to the same date.
	got := ClassifyCheckIn(event("2025-03-10", 6, 0, 0))

	assert.Equal(t, StatusLate, got.Status)
	assert.Equal(t, 465, got.LateByMinutes)
	assert.Equal(t, date("2025-03-10"), got.ShiftDate)
}

func TestInShiftWindow(t *testing.T) {
	assert.True(t, InShiftWindow(event("2025-03-10", 21, 0, 0)))
	assert.True(t, InShiftWindow(event("2025-03-10", 3, 0, 0)))
	assert.True(t, InShiftWindow(event("2025-03-10", 6, 0, 0)))
	assert.False(t, InShiftWindow(event("2025-03-10", 6, 1, 0)))
	assert.False(t, InShiftWindow(event("2025-03-10", 20, 59, 0)))
}

func TestComputeWorkSpan(t *testing.T) {
	tests := []struct {
		name         string
		in           ClockEvent
		out          ClockEvent
		breaks       int
		wantGross    int
		wantNet      int
		wantOvertime int
		wantHours    string
	}{
		{
			name:      "night shift ending before midnight",
			in:        event("2025-03-10", 21, 0, 0),
			out:       event("2025-03-10", 23, 30, 0),
			wantGross: 150, wantNet: 150, wantHours: "0",
		},
		{
			name:      "night shift ending next morning",
			in:        event("2025-03-10", 21, 0, 0),
			out:       event("2025-03-11", 5, 30, 0),
			wantGross: 510, wantNet: 510, wantHours: "0",
		},
		{
			name:      "same minute check-out",
			in:        event("2025-03-10", 21, 56, 49),
			out:       event("2025-03-10", 21, 56, 58),
			wantGross: 0, wantNet: 0, wantHours: "0",
		},
		{
			name:         "overtime after breaks",
			in:           event("2025-03-10", 21, 0, 0),
			out:          event("2025-03-11", 7, 0, 0),
			breaks:       30,
			wantGross:    600,
			wantNet:      570,
			wantOvertime: 30,
			wantHours:    "0.50",
		},
		{
			name:      "breaks larger than gross floor at zero",
			in:        event("2025-03-10", 22, 0, 0),
			out:       event("2025-03-10", 22, 20, 0),
			breaks:    45,
			wantGross: 20, wantNet: 0, wantHours: "0",
		},
		{
			name:      "day check-in uses same-day arithmetic",
			in:        event("2025-03-10", 9, 0, 0),
			out:       event("2025-03-10", 17, 45, 0),
			wantGross: 525, wantNet: 525, wantHours: "0",
		},
		{
			name:      "day check-in with earlier check-out floors at zero",
			in:        event("2025-03-10", 18, 0, 0),
			out:       event("2025-03-11", 2, 0, 0),
			wantGross: 0, wantNet: 0, wantHours: "0",
		},
		{
			name:         "extended shift past the morning cutoff",
			in:           event("2025-03-10", 23, 0, 0),
			out:          event("2025-03-11", 10, 20, 0),
			breaks:       10,
			wantGross:    680,
			wantNet:      670,
			wantOvertime: 130,
			wantHours:    "2.17",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWorkSpan(tt.in, tt.out, tt.breaks)

			assert.Equal(t, tt.wantGross, got.GrossMinutes)
			assert.Equal(t, tt.wantNet, got.NetMinutes)
			assert.Equal(t, tt.wantOvertime, got.OvertimeMinutes)
			assert.True(t, decimal.RequireFromString(tt.wantHours).Equal(got.OvertimeHours),
				"overtime hours: want %s got %s", tt.wantHours, got.OvertimeHours)
		})
	}
}

func TestOvertimeHoursFormatting(t *testing.T) {
	assert.Equal(t, "0.50", OvertimeHours(30).StringFixed(2))
	assert.Equal(t, "1.00", OvertimeHours(60).StringFixed(2))
	assert.Equal(t, "0.33", OvertimeHours(20).StringFixed(2))
	assert.Equal(t, "0.00", OvertimeHours(0).StringFixed(2))
}

func TestResolverIsDeterministic(t *testing.T) {
	in := event("2025-03-10", 22, 40, 0)
	out := event("2025-03-11", 6, 55, 0)

	assert.Equal(t, ResolveShiftDate(in), ResolveShiftDate(in))
	assert.Equal(t, ClassifyCheckIn(in), ClassifyCheckIn(in))

	first := ComputeWorkSpan(in, out, 25)
	second := ComputeWorkSpan(in, out, 25)
	assert.Equal(t, first.GrossMinutes, second.GrossMinutes)
	assert.Equal(t, first.NetMinutes, second.NetMinutes)
	assert.True(t, first.OvertimeHours.Equal(second.OvertimeHours))
}

func TestShiftEnd(t *testing.T) {
	assert.Equal(t, time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC), ShiftEnd(date("2025-03-10")))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date("2025-03-08")))  // Saturday
	assert.True(t, IsWeekend(date("2025-03-09")))  // Sunday
	assert.False(t, IsWeekend(date("2025-03-10"))) // Monday
}
