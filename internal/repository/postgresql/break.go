package postgresql

import (
	"context"
	"fmt"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/database"
)

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}

const breakSelect = `
	SELECT
		b.id, b.attendance_id, b.employee_id, b.break_type,
		b.break_start_time, b.break_end_time, b.break_duration_minutes, b.reason, b.created_at,
		e.full_name, a.attendance_date
	FROM attendance_breaks b
	JOIN employees e ON e.id = b.employee_id
	JOIN attendances a ON a.id = b.attendance_id
`

func scanBreak(row rowScanner) (attendance.Break, error) {
	var b attendance.Break
	err := row.Scan(
		&b.ID, &b.AttendanceID, &b.EmployeeID, &b.Type,
		&b.StartTime, &b.EndTime, &b.DurationMinutes, &b.Reason, &b.CreatedAt,
		&b.EmployeeName, &b.AttendanceDate,
	)
	return b, err
}

// Create implements attendance.BreakRepository.
func (r *breakRepository) Create(ctx context.Context, b attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_breaks (
			id, attendance_id, employee_id, break_type,
			break_start_time, break_end_time, break_duration_minutes, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		b.ID, b.AttendanceID, b.EmployeeID, b.Type,
		b.StartTime, b.EndTime, b.DurationMinutes, b.Reason,
	).Scan(&b.CreatedAt)
	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to create break: %w", err)
	}

	return b, nil
}

// ListByAttendanceIDs implements attendance.BreakRepository.
func (r *breakRepository) ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) (map[string][]attendance.Break, error) {
	result := make(map[string][]attendance.Break, len(attendanceIDs))
	if len(attendanceIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, breakSelect+`
		WHERE b.attendance_id = ANY($1)
		ORDER BY b.created_at ASC
	`, attendanceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		result[b.AttendanceID] = append(result[b.AttendanceID], b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breaks: %w", err)
	}

	return result, nil
}

// List implements attendance.BreakRepository.
func (r *breakRepository) List(ctx context.Context, filter attendance.BreakFilter) ([]attendance.Break, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND b.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.BreakType != nil && *filter.BreakType != "" {
		baseWhere += fmt.Sprintf(" AND b.break_type = $%d", argIdx)
		args = append(args, *filter.BreakType)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.attendance_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.attendance_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_breaks b
		JOIN attendances a ON a.id = b.attendance_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count breaks: %w", err)
	}

	selectQuery := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY a.attendance_date DESC, b.created_at DESC
		LIMIT $%d OFFSET $%d
	`, breakSelect, baseWhere, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate breaks: %w", err)
	}

	return breaks, total, nil
}
