package dashboard

import (
	"context"
	"time"
)

// ShiftStats combines the attendance counts of one shift date in a single query
type ShiftStats struct {
	ActiveEmployees  int64
	CheckedIn        int64
	Present          int64
	Late             int64
	CurrentlyWorking int64
	OvertimeMinutes  int64
}

// DailyCount is one point of the status trend
type DailyCount struct {
	Date    time.Time
	Present int64
	Late    int64
	Absent  int64
}

// CheckInRecord is a row of the latest check-ins panel
type CheckInRecord struct {
	EmployeeName  string
	EmployeeCode  string
	CheckInTime   time.Time
	Status        string
	LateByMinutes int
}

type BreakUsage struct {
	BreakType string
	Count     int64
	Minutes   int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetShiftStats returns the counts for one shift date
	GetShiftStats(ctx context.Context, shiftDate time.Time) (*ShiftStats, error)

	// GetDailyCounts returns per-date status counts between two dates inclusive; dates without rows are omitted
	GetDailyCounts(ctx context.Context, from, to time.Time) ([]DailyCount, error)

	// GetLatestCheckIns returns the most recent check-ins of a shift date
	GetLatestCheckIns(ctx context.Context, shiftDate time.Time, limit int) ([]CheckInRecord, error)

	GetBreakUsage(ctx context.Context, shiftDate time.Time) ([]BreakUsage, error)
}
