package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/legacy"
)

type legacyRepository struct {
	db *sql.DB
}

func NewLegacyRepository(db *sql.DB) legacy.Repository {
	return &legacyRepository{db: db}
}

// ListAttendance implements legacy.Repository.
func (r *legacyRepository) ListAttendance(ctx context.Context, from, to string) ([]legacy.Attendance, error) {
	query := `
		SELECT id, employee_id, attendance_date, check_in_time, check_out_time, status,
			COALESCE(late_by_minutes, 0), COALESCE(total_break_duration_minutes, 0),
			COALESCE(gross_working_time_minutes, 0), COALESCE(net_working_time_minutes, 0),
			COALESCE(overtime_minutes, 0), device_info, ip_address
		FROM Employee_Attendance
		WHERE attendance_date BETWEEN ? AND ?
		ORDER BY attendance_date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy attendance: %w", err)
	}
	defer rows.Close()

	var records []legacy.Attendance
	for rows.Next() {
		var (
			a                   legacy.Attendance
			checkIn, checkOut   sql.NullString
			deviceInfo, address sql.NullString
		)
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.AttendanceDate, &checkIn, &checkOut, &a.Status,
			&a.LateByMinutes, &a.TotalBreakMinutes, &a.GrossMinutes, &a.NetMinutes,
			&a.OvertimeMinutes, &deviceInfo, &address,
		); err != nil {
			return nil, fmt.Errorf("failed to scan legacy attendance: %w", err)
		}
		a.CheckIn = nullString(checkIn)
		a.CheckOut = nullString(checkOut)
		a.DeviceInfo = nullString(deviceInfo)
		a.IPAddress = nullString(address)
		records = append(records, a)
	}
	return records, rows.Err()
}

// ListBreaks implements legacy.Repository.
func (r *legacyRepository) ListBreaks(ctx context.Context, from, to string) (map[int64][]legacy.Break, error) {
	query := `
		SELECT b.id, b.attendance_id, b.break_type, b.break_start_time, b.break_end_time,
			COALESCE(b.break_duration_minutes, 0), b.reason
		FROM Employee_Breaks b
		JOIN Employee_Attendance a ON a.id = b.attendance_id
		WHERE a.attendance_date BETWEEN ? AND ?
		ORDER BY b.attendance_id ASC, b.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy breaks: %w", err)
	}
	defer rows.Close()

	breaks := make(map[int64][]legacy.Break)
	for rows.Next() {
		var (
			b                 legacy.Break
			start, end, notes sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.AttendanceID, &b.BreakType, &start, &end, &b.DurationMinutes, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan legacy break: %w", err)
		}
		b.Start = nullString(start)
		b.End = nullString(end)
		b.Reason = nullString(notes)
		breaks[b.AttendanceID] = append(breaks[b.AttendanceID], b)
	}
	return breaks, rows.Err()
}

func nullString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	return &s.String
}
