package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nightshift-hris/attendance-backend-go/internal/config"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/employee"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/email"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/shift"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
)

const autoClosedRemark = "auto-closed"

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	emailSvc       email.EmailService
	cfg            config.JobsConfig
	loc            *time.Location
	now            func() time.Time

	mu         sync.Mutex
	lastDigest string
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	emailSvc email.EmailService,
	cfg config.JobsConfig,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		emailSvc:       emailSvc,
		cfg:            cfg,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent", j.cfg.Interval, j.MarkAbsentEmployees)
	scheduler.AddJob("auto_close_stale", j.cfg.Interval, j.AutoCloseStaleAttendances)
	scheduler.AddJob("daily_digest", j.cfg.Interval, j.SendDailyDigest)
}

// lastEndedShift is the most recent shift date whose 06:00 end has passed.
func (j *AttendanceJobs) lastEndedShift() time.Time {
	return shift.CurrentShiftDate(j.now().In(j.loc)).AddDate(0, 0, -1)
}

// missingEmployees returns active employees on staff for shiftDate with no record for it.
func (j *AttendanceJobs) missingEmployees(ctx context.Context, shiftDate time.Time, records []attendance.Attendance) ([]employee.Employee, error) {
	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	recorded := make(map[string]bool, len(records))
	for _, r := range records {
		recorded[r.EmployeeID] = true
	}

	var missing []employee.Employee
	for _, e := range employees {
		if !recorded[e.ID] && e.WasEmployedOn(shiftDate) {
			missing = append(missing, e)
		}
	}
	return missing, nil
}

// MarkAbsentEmployees inserts Absent rows for the shift that just ended. Weekends are skipped.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	shiftDate := j.lastEndedShift()
	if shift.IsWeekend(shiftDate) {
		return nil
	}

	records, err := j.attendanceRepo.ListByDate(ctx, shiftDate)
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}

	missing, err := j.missingEmployees(ctx, shiftDate, records)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	absents := make([]attendance.Attendance, 0, len(missing))
	for _, e := range missing {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate attendance id: %w", err)
		}
		absent := attendance.NewAbsent(e.ID, shiftDate)
		absent.ID = id.String()
		absents = append(absents, absent)
	}

	created, err := j.attendanceRepo.CreateAbsentBulk(ctx, absents)
	if err != nil {
		return fmt.Errorf("failed to create absent records: %w", err)
	}

	slog.Info("Cron: Marked absent employees", "shift_date", shiftDate.Format(validator.DateLayout), "created", created)
	return nil
}

// AutoCloseStaleAttendances closes records left open past cfg.StaleAfter at the 06:00 end of their shift.
func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	now := j.now()
	cutoff := now.Add(-j.cfg.StaleAfter)

	stale, err := j.attendanceRepo.ListOpenCheckedInBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale attendances: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	closed := 0
	for _, att := range stale {
		d := att.AttendanceDate
		end := shift.ShiftEnd(time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, j.loc))
		if end.After(now) {
			continue
		}

		att.CheckOutTime = &end
		att.Remarks = appendRemark(att.Remarks, autoClosedRemark)
		att.Recompute(j.loc)

		if err := j.attendanceRepo.Update(ctx, att); err != nil {
			slog.Error("Cron: Failed to auto-close attendance", "attendance_id", att.ID, "error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: Auto-closed stale attendances", "found", len(stale), "closed", closed)
	return nil
}

// SendDailyDigest mails HR the late and absent lists once per finished shift.
func (j *AttendanceJobs) SendDailyDigest(ctx context.Context) error {
	shiftDate := j.lastEndedShift()
	key := shiftDate.Format(validator.DateLayout)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastDigest == key {
		return nil
	}

	records, err := j.attendanceRepo.ListByDate(ctx, shiftDate)
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}
	departments := make(map[string]string, len(employees))
	total := 0
	for _, e := range employees {
		if e.Department != nil {
			departments[e.ID] = *e.Department
		}
		if e.WasEmployedOn(shiftDate) {
			total++
		}
	}

	digest := email.DailyDigest{ShiftDate: key, TotalEmployees: total}
	for _, r := range records {
		entry := email.DigestEntry{
			EmployeeCode: r.EmployeeCode,
			EmployeeName: r.EmployeeName,
			Department:   departments[r.EmployeeID],
		}
		switch r.Status {
		case attendance.StatusLate:
			if r.CheckInTime != nil {
				entry.CheckInTime = r.CheckInTime.In(j.loc).Format("15:04")
			}
			entry.LateByMinutes = r.LateByMinutes
			digest.Late = append(digest.Late, entry)
		case attendance.StatusAbsent:
			digest.Absent = append(digest.Absent, entry)
		}
	}

	// rows mark_absent has not written yet
	if !shift.IsWeekend(shiftDate) {
		for _, e := range employees {
			if !e.WasEmployedOn(shiftDate) || hasRecord(records, e.ID) {
				continue
			}
			digest.Absent = append(digest.Absent, email.DigestEntry{
				EmployeeCode: e.EmployeeCode,
				EmployeeName: e.FullName,
				Department:   departments[e.ID],
			})
		}
	}

	if err := j.emailSvc.SendDailyDigest(ctx, j.cfg.DigestRecipients, digest); err != nil {
		return fmt.Errorf("failed to send daily digest: %w", err)
	}

	j.lastDigest = key
	slog.Info("Cron: Daily digest sent", "shift_date", key, "late", len(digest.Late), "absent", len(digest.Absent))
	return nil
}

func hasRecord(records []attendance.Attendance, employeeID string) bool {
	for _, r := range records {
		if r.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

func appendRemark(remarks *string, remark string) *string {
	if remarks == nil || *remarks == "" {
		return &remark
	}
	combined := *remarks + "; " + remark
	return &combined
}
