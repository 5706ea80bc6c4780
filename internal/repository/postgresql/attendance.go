package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/database"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT
		a.id, a.employee_id, a.attendance_date, a.check_in_time, a.check_out_time,
		a.status, a.on_time, a.late_by_minutes,
		a.total_breaks_taken, a.total_break_duration_minutes,
		a.smoke_break_count, a.smoke_break_duration_minutes,
		a.dinner_break_count, a.dinner_break_duration_minutes,
		a.washroom_break_count, a.washroom_break_duration_minutes,
		a.prayer_break_count, a.prayer_break_duration_minutes,
		a.gross_working_minutes, a.net_working_minutes, a.overtime_minutes, a.overtime_hours,
		a.device_info, a.ip_address, a.remarks, a.created_at, a.updated_at,
		e.employee_code, e.full_name, e.email
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.AttendanceDate, &att.CheckInTime, &att.CheckOutTime,
		&att.Status, &att.OnTime, &att.LateByMinutes,
		&att.Breaks.TotalBreaks, &att.Breaks.TotalMinutes,
		&att.Breaks.SmokeCount, &att.Breaks.SmokeMinutes,
		&att.Breaks.DinnerCount, &att.Breaks.DinnerMinutes,
		&att.Breaks.WashroomCount, &att.Breaks.WashroomMinutes,
		&att.Breaks.PrayerCount, &att.Breaks.PrayerMinutes,
		&att.GrossMinutes, &att.NetMinutes, &att.OvertimeMinutes, &att.OvertimeHours,
		&att.DeviceInfo, &att.IPAddress, &att.Remarks, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeCode, &att.EmployeeName, &att.EmployeeEmail,
	)
	return att, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}

// dateParam renders a shift date for a DATE column without a timezone shift.
func dateParam(t time.Time) string {
	return t.Format(validator.DateLayout)
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, attendance_date, check_in_time, check_out_time,
			status, on_time, late_by_minutes,
			gross_working_minutes, net_working_minutes, overtime_minutes, overtime_hours,
			device_info, ip_address, remarks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		dateParam(att.AttendanceDate),
		att.CheckInTime,
		att.CheckOutTime,
		att.Status,
		att.OnTime,
		att.LateByMinutes,
		att.GrossMinutes,
		att.NetMinutes,
		att.OvertimeMinutes,
		att.OvertimeHours,
		att.DeviceInfo,
		att.IPAddress,
		att.Remarks,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// CreateAbsentBulk implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateAbsentBulk(ctx context.Context, records []attendance.Attendance) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, employee_id, attendance_date, status, on_time, overtime_hours)
		VALUES ($1, $2, $3, $4, FALSE, 0)
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
	`

	created := 0
	for _, r := range records {
		tag, err := q.Exec(ctx, query, r.ID, r.EmployeeID, dateParam(r.AttendanceDate), attendance.StatusAbsent)
		if err != nil {
			return created, fmt.Errorf("failed to insert absent record for %s: %w", dateParam(r.AttendanceDate), err)
		}
		created += int(tag.RowsAffected())
	}

	return created, nil
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, attendance_date, check_in_time, check_out_time,
			status, on_time, late_by_minutes,
			total_breaks_taken, total_break_duration_minutes,
			smoke_break_count, smoke_break_duration_minutes,
			dinner_break_count, dinner_break_duration_minutes,
			washroom_break_count, washroom_break_duration_minutes,
			prayer_break_count, prayer_break_duration_minutes,
			gross_working_minutes, net_working_minutes, overtime_minutes, overtime_hours,
			device_info, ip_address, remarks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE SET
			check_in_time = EXCLUDED.check_in_time,
			check_out_time = EXCLUDED.check_out_time,
			status = EXCLUDED.status,
			on_time = EXCLUDED.on_time,
			late_by_minutes = EXCLUDED.late_by_minutes,
			total_breaks_taken = EXCLUDED.total_breaks_taken,
			total_break_duration_minutes = EXCLUDED.total_break_duration_minutes,
			smoke_break_count = EXCLUDED.smoke_break_count,
			smoke_break_duration_minutes = EXCLUDED.smoke_break_duration_minutes,
			dinner_break_count = EXCLUDED.dinner_break_count,
			dinner_break_duration_minutes = EXCLUDED.dinner_break_duration_minutes,
			washroom_break_count = EXCLUDED.washroom_break_count,
			washroom_break_duration_minutes = EXCLUDED.washroom_break_duration_minutes,
			prayer_break_count = EXCLUDED.prayer_break_count,
			prayer_break_duration_minutes = EXCLUDED.prayer_break_duration_minutes,
			gross_working_minutes = EXCLUDED.gross_working_minutes,
			net_working_minutes = EXCLUDED.net_working_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			overtime_hours = EXCLUDED.overtime_hours,
			remarks = EXCLUDED.remarks,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		att.ID, att.EmployeeID, dateParam(att.AttendanceDate), att.CheckInTime, att.CheckOutTime,
		att.Status, att.OnTime, att.LateByMinutes,
		att.Breaks.TotalBreaks, att.Breaks.TotalMinutes,
		att.Breaks.SmokeCount, att.Breaks.SmokeMinutes,
		att.Breaks.DinnerCount, att.Breaks.DinnerMinutes,
		att.Breaks.WashroomCount, att.Breaks.WashroomMinutes,
		att.Breaks.PrayerCount, att.Breaks.PrayerMinutes,
		att.GrossMinutes, att.NetMinutes, att.OvertimeMinutes, att.OvertimeHours,
		att.DeviceInfo, att.IPAddress, att.Remarks,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return inserted, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+" WHERE a.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE a.employee_id = $1
		  AND a.attendance_date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dateParam(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository. Break counters are
// owned by AddBreak and left untouched.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			attendance_date = $2,
			check_in_time = $3,
			check_out_time = $4,
			status = $5,
			on_time = $6,
			late_by_minutes = $7,
			gross_working_minutes = $8,
			net_working_minutes = $9,
			overtime_minutes = $10,
			overtime_hours = $11,
			device_info = $12,
			ip_address = $13,
			remarks = $14,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		dateParam(att.AttendanceDate),
		att.CheckInTime,
		att.CheckOutTime,
		att.Status,
		att.OnTime,
		att.LateByMinutes,
		att.GrossMinutes,
		att.NetMinutes,
		att.OvertimeMinutes,
		att.OvertimeHours,
		att.DeviceInfo,
		att.IPAddress,
		att.Remarks,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

var breakCounterColumns = map[attendance.BreakType][2]string{
	attendance.BreakSmoke:    {"smoke_break_count", "smoke_break_duration_minutes"},
	attendance.BreakDinner:   {"dinner_break_count", "dinner_break_duration_minutes"},
	attendance.BreakWashroom: {"washroom_break_count", "washroom_break_duration_minutes"},
	attendance.BreakPrayer:   {"prayer_break_count", "prayer_break_duration_minutes"},
}

// AddBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) AddBreak(ctx context.Context, id string, breakType attendance.BreakType, minutes int) error {
	q := GetQuerier(ctx, a.db)

	updates := []string{
		"total_breaks_taken = total_breaks_taken + 1",
		"total_break_duration_minutes = total_break_duration_minutes + $2",
	}
	if cols, ok := breakCounterColumns[breakType]; ok {
		updates = append(updates,
			fmt.Sprintf("%s = %s + 1", cols[0], cols[0]),
			fmt.Sprintf("%s = %s + $2", cols[1], cols[1]),
		)
	}

	query := fmt.Sprintf(`
		UPDATE attendances
		SET %s, updated_at = NOW()
		WHERE id = $1
	`, strings.Join(updates, ", "))

	tag, err := q.Exec(ctx, query, id, minutes)
	if err != nil {
		return fmt.Errorf("failed to add break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.attendance_date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	// Date range filters
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

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Build ORDER BY
	orderByField := "a.attendance_date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "check_in_time":
		orderByField = "a.check_in_time"
	case "check_out_time":
		orderByField = "a.check_out_time"
	case "status":
		orderByField = "a.status"
	case "late_by_minutes":
		orderByField = "a.late_by_minutes"
	case "overtime_minutes":
		orderByField = "a.overtime_minutes"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s %s, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, attendanceSelect, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}

	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE a.employee_id = $1
		  AND a.attendance_date BETWEEN $2 AND $3
		ORDER BY a.attendance_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, dateParam(start), dateParam(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query employee attendances: %w", err)
	}
	return collectAttendances(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, attendanceSelect+" WHERE a.attendance_date = $1 ORDER BY e.full_name ASC", dateParam(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances by date: %w", err)
	}
	return collectAttendances(rows)
}

// ListOpenCheckedInBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenCheckedInBefore(ctx context.Context, t time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE a.check_out_time IS NULL
		  AND a.check_in_time IS NOT NULL
		  AND a.check_in_time < $1
		ORDER BY a.check_in_time ASC
	`

	rows, err := q.Query(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("failed to query open attendances: %w", err)
	}
	return collectAttendances(rows)
}
