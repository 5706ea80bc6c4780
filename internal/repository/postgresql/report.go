package postgresql

import (
	"context"
	"fmt"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/report"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetEmployeeTotals aggregates attendance per employee for a date range in a single query
func (r *reportRepositoryImpl) GetEmployeeTotals(ctx context.Context, startDate, endDate string, employeeID *string) ([]report.EmployeeTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id, e.employee_code, e.full_name, e.department,
			COUNT(*) FILTER (WHERE a.status IN ('Present', 'Late')) AS present_days,
			COUNT(*) FILTER (WHERE a.status = 'Late') AS late_days,
			COUNT(*) FILTER (WHERE a.status = 'Absent') AS absent_days,
			COALESCE(SUM(a.late_by_minutes), 0) AS late_minutes,
			COALESCE(SUM(a.total_breaks_taken), 0) AS breaks,
			COALESCE(SUM(a.total_break_duration_minutes), 0) AS break_minutes,
			COALESCE(SUM(a.gross_working_minutes), 0) AS gross_minutes,
			COALESCE(SUM(a.net_working_minutes), 0) AS net_minutes,
			COALESCE(SUM(a.overtime_minutes), 0) AS overtime_minutes,
			COUNT(*) FILTER (WHERE a.overtime_minutes > 0) AS overtime_days
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.attendance_date BETWEEN $1 AND $2
	`
	args := []interface{}{startDate, endDate}

	if employeeID != nil {
		query += " AND a.employee_id = $3"
		args = append(args, *employeeID)
	}

	query += `
		GROUP BY e.id, e.employee_code, e.full_name, e.department
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee totals: %w", err)
	}
	defer rows.Close()

	var totals []report.EmployeeTotals
	for rows.Next() {
		var t report.EmployeeTotals
		if err := rows.Scan(
			&t.EmployeeID, &t.EmployeeCode, &t.EmployeeName, &t.Department,
			&t.PresentDays, &t.LateDays, &t.AbsentDays, &t.LateMinutes,
			&t.Breaks, &t.BreakMinutes, &t.GrossMinutes, &t.NetMinutes,
			&t.OvertimeMinutes, &t.OvertimeDays,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
