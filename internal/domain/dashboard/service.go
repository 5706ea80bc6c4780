package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the current shift's numbers, the 7-day trend and latest check-ins
	GetDashboard(ctx context.Context) (*DashboardResponse, error)

	// GetShiftStats returns the counts for a shift date (YYYY-MM-DD), defaulting to the current shift
	GetShiftStats(ctx context.Context, date string) (*ShiftStatsResponse, error)
}
