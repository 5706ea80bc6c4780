package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetShiftStats returns employee and attendance counts for a shift date in single query
func (r *dashboardRepositoryImpl) GetShiftStats(ctx context.Context, shiftDate time.Time) (*dashboard.ShiftStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees
			 WHERE employment_status = 'active'
			   AND joining_date <= $1
			   AND (resignation_date IS NULL OR resignation_date > $1)) AS active_count,
			COUNT(*) FILTER (WHERE a.check_in_time IS NOT NULL) AS checked_in,
			COUNT(*) FILTER (WHERE a.status = 'Present') AS present,
			COUNT(*) FILTER (WHERE a.status = 'Late') AS late,
			COUNT(*) FILTER (WHERE a.check_in_time IS NOT NULL AND a.check_out_time IS NULL) AS working,
			COALESCE(SUM(a.overtime_minutes), 0) AS overtime_minutes
		FROM attendances a
		WHERE a.attendance_date = $1
	`

	var stats dashboard.ShiftStats
	err := q.QueryRow(ctx, query, dateParam(shiftDate)).Scan(
		&stats.ActiveEmployees, &stats.CheckedIn, &stats.Present, &stats.Late,
		&stats.CurrentlyWorking, &stats.OvertimeMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift stats: %w", err)
	}
	return &stats, nil
}

// GetDailyCounts returns present/late/absent per shift date
func (r *dashboardRepositoryImpl) GetDailyCounts(ctx context.Context, from, to time.Time) ([]dashboard.DailyCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			attendance_date,
			COUNT(*) FILTER (WHERE status = 'Present') AS present,
			COUNT(*) FILTER (WHERE status = 'Late') AS late,
			COUNT(*) FILTER (WHERE status = 'Absent') AS absent
		FROM attendances
		WHERE attendance_date BETWEEN $1 AND $2
		GROUP BY attendance_date
		ORDER BY attendance_date ASC
	`

	rows, err := q.Query(ctx, query, dateParam(from), dateParam(to))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily counts: %w", err)
	}
	defer rows.Close()

	var counts []dashboard.DailyCount
	for rows.Next() {
		var c dashboard.DailyCount
		if err := rows.Scan(&c.Date, &c.Present, &c.Late, &c.Absent); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GetLatestCheckIns returns the newest check-ins of a shift date
func (r *dashboardRepositoryImpl) GetLatestCheckIns(ctx context.Context, shiftDate time.Time, limit int) ([]dashboard.CheckInRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.full_name, e.employee_code, a.check_in_time, a.status, a.late_by_minutes
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.attendance_date = $1 AND a.check_in_time IS NOT NULL
		ORDER BY a.check_in_time DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, dateParam(shiftDate), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest check-ins: %w", err)
	}
	defer rows.Close()

	var records []dashboard.CheckInRecord
	for rows.Next() {
		var rec dashboard.CheckInRecord
		if err := rows.Scan(&rec.EmployeeName, &rec.EmployeeCode, &rec.CheckInTime, &rec.Status, &rec.LateByMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetBreakUsage returns break counts and minutes per type for a shift date
func (r *dashboardRepositoryImpl) GetBreakUsage(ctx context.Context, shiftDate time.Time) ([]dashboard.BreakUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.break_type, COUNT(*), COALESCE(SUM(b.break_duration_minutes), 0)
		FROM attendance_breaks b
		JOIN attendances a ON a.id = b.attendance_id
		WHERE a.attendance_date = $1
		GROUP BY b.break_type
		ORDER BY b.break_type
	`

	rows, err := q.Query(ctx, query, dateParam(shiftDate))
	if err != nil {
		return nil, fmt.Errorf("failed to get break usage: %w", err)
	}
	defer rows.Close()

	var usage []dashboard.BreakUsage
	for rows.Next() {
		var u dashboard.BreakUsage
		if err := rows.Scan(&u.BreakType, &u.Count, &u.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan break usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
