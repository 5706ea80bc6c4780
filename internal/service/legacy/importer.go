package legacy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/employee"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/legacy"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/database"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/shift"
)

type ImporterImpl struct {
	tx database.Transactor
	legacy.Repository
	attendance.AttendanceRepository
	attendance.BreakRepository
	employee.EmployeeRepository
	loc *time.Location
}

func NewImporter(
	tx database.Transactor,
	legacyRepo legacy.Repository,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) legacy.ImportService {
	return &ImporterImpl{
		tx:                   tx,
		Repository:           legacyRepo,
		AttendanceRepository: attendanceRepo,
		BreakRepository:      breakRepo,
		EmployeeRepository:   employeeRepo,
		loc:                  loc,
	}
}

// Import copies legacy rows in [From, To] into attendances, re-deriving every
// computed figure with the shift resolver. Break rows are copied only for
// records that did not exist yet.
func (s *ImporterImpl) Import(ctx context.Context, req legacy.ImportRequest) (legacy.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return legacy.ImportResult{}, err
	}

	records, err := s.ListAttendance(ctx, req.From, req.To)
	if err != nil {
		return legacy.ImportResult{}, err
	}
	breaksByAttendance, err := s.ListBreaks(ctx, req.From, req.To)
	if err != nil {
		return legacy.ImportResult{}, err
	}

	result := legacy.ImportResult{Read: len(records), DryRun: req.DryRun}
	employees := make(map[int64]string)

	for _, rec := range records {
		employeeID, err := s.resolveEmployee(ctx, employees, rec.EmployeeID)
		if err != nil {
			if errors.Is(err, legacy.ErrUnknownEmployee) {
				slog.Warn("Skipping legacy attendance", "legacy_id", rec.ID, "legacy_employee_id", rec.EmployeeID, "reason", err)
				result.Skipped++
				continue
			}
			return result, err
		}

		legacyBreaks := breaksByAttendance[rec.ID]
		att, breaks, err := s.convert(rec, employeeID, legacyBreaks)
		if err != nil {
			slog.Warn("Skipping legacy attendance", "legacy_id", rec.ID, "reason", err)
			result.Skipped++
			continue
		}

		if differs(rec, att) {
			result.Recomputed++
		}

		if req.DryRun {
			result.Imported++
			continue
		}

		created, err := s.store(ctx, att, breaks)
		if err != nil {
			return result, fmt.Errorf("failed to import legacy attendance %d: %w", rec.ID, err)
		}
		result.Imported++
		if created {
			result.Created++
			result.Breaks += len(breaks)
		} else {
			result.Updated++
		}
	}

	slog.Info("Legacy import finished",
		"from", req.From,
		"to", req.To,
		"read", result.Read,
		"imported", result.Imported,
		"recomputed", result.Recomputed,
		"skipped", result.Skipped,
		"dry_run", req.DryRun,
	)
	return result, nil
}

func (s *ImporterImpl) resolveEmployee(ctx context.Context, cache map[int64]string, legacyID int64) (string, error) {
	if id, ok := cache[legacyID]; ok {
		if id == "" {
			return "", legacy.ErrUnknownEmployee
		}
		return id, nil
	}

	emp, err := s.GetByLegacyID(ctx, legacyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			cache[legacyID] = ""
			return "", legacy.ErrUnknownEmployee
		}
		return "", fmt.Errorf("failed to get employee by legacy id: %w", err)
	}
	cache[legacyID] = emp.ID
	return emp.ID, nil
}

func (s *ImporterImpl) store(ctx context.Context, att attendance.Attendance, breaks []attendance.Break) (bool, error) {
	var created bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Upsert(ctx, att)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		for _, b := range breaks {
			if _, err := s.BreakRepository.Create(ctx, b); err != nil {
				return fmt.Errorf("failed to create break: %w", err)
			}
		}
		return nil
	})
	return created, err
}

// convert builds the attendance record for a legacy row
func (s *ImporterImpl) convert(rec legacy.Attendance, employeeID string, legacyBreaks []legacy.Break) (attendance.Attendance, []attendance.Break, error) {
	d := rec.AttendanceDate
	shiftDate := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, nil, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	if rec.CheckIn == nil {
		att := attendance.NewAbsent(employeeID, shiftDate)
		att.ID = id.String()
		return att, nil, nil
	}

	in, err := s.clockOn(shiftDate, *rec.CheckIn, nil)
	if err != nil {
		return attendance.Attendance{}, nil, err
	}

	att := attendance.Attendance{
		ID:             id.String(),
		EmployeeID:     employeeID,
		AttendanceDate: shiftDate,
		CheckInTime:    &in,
		DeviceInfo:     rec.DeviceInfo,
		IPAddress:      rec.IPAddress,
	}

	if rec.CheckOut != nil {
		out, err := s.clockOn(shiftDate, *rec.CheckOut, &in)
		if err != nil {
			return attendance.Attendance{}, nil, err
		}
		att.CheckOutTime = &out
	}

	var breaks []attendance.Break
	for _, lb := range legacyBreaks {
		b, err := s.convertBreak(lb, att, shiftDate)
		if err != nil {
			return attendance.Attendance{}, nil, err
		}
		att.Breaks.Add(b.Type, b.DurationMinutes)
		breaks = append(breaks, b)
	}
	// totals kept without break rows become a single Other break
	if len(legacyBreaks) == 0 && rec.TotalBreakMinutes > 0 {
		att.Breaks.Add(attendance.BreakOther, rec.TotalBreakMinutes)
	}

	att.Recompute(s.loc)
	// the legacy date is authoritative even for check-ins outside the window
	att.AttendanceDate = shiftDate
	return att, breaks, nil
}

func (s *ImporterImpl) convertBreak(lb legacy.Break, att attendance.Attendance, shiftDate time.Time) (attendance.Break, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to generate break id: %w", err)
	}

	breakType, ok := attendance.ParseBreakType(lb.BreakType)
	if !ok {
		breakType = attendance.BreakOther
	}

	b := attendance.Break{
		ID:              id.String(),
		AttendanceID:    att.ID,
		EmployeeID:      att.EmployeeID,
		Type:            breakType,
		DurationMinutes: max(lb.DurationMinutes, 0),
		Reason:          lb.Reason,
	}
	if lb.Start != nil {
		start, err := s.clockOn(shiftDate, *lb.Start, att.CheckInTime)
		if err != nil {
			return attendance.Break{}, err
		}
		b.StartTime = &start
	}
	if lb.End != nil {
		end, err := s.clockOn(shiftDate, *lb.End, b.StartTime)
		if err != nil {
			return attendance.Break{}, err
		}
		b.EndTime = &end
	}
	return b, nil
}

// clockOn places a legacy TIME value on the shift that started on shiftDate.
// Times before 06:00 fall on the next calendar day; a time earlier than after
// is moved one day forward.
func (s *ImporterImpl) clockOn(shiftDate time.Time, clock string, after *time.Time) (time.Time, error) {
	var (
		parsed time.Time
		err    error
	)
	for _, layout := range []string{"15:04:05", "15:04"} {
		parsed, err = time.Parse(layout, clock)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", legacy.ErrInvalidClock, clock)
	}

	t := time.Date(shiftDate.Year(), shiftDate.Month(), shiftDate.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, s.loc)
	if parsed.Hour()*60+parsed.Minute() < shift.MorningCutoffMinute {
		t = t.AddDate(0, 0, 1)
	}
	if after != nil && t.Before(*after) {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

// differs reports whether the stored legacy figures disagree with the recomputed record
func differs(rec legacy.Attendance, att attendance.Attendance) bool {
	return rec.Status != string(att.Status) ||
		rec.LateByMinutes != att.LateByMinutes ||
		rec.GrossMinutes != att.GrossMinutes ||
		rec.NetMinutes != att.NetMinutes ||
		rec.OvertimeMinutes != att.OvertimeMinutes
}
