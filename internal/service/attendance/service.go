package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/employee"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/user"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/database"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/shift"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	attendance.BreakRepository
	employee.EmployeeRepository
	loc *time.Location
	now func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		BreakRepository:      breakRepo,
		EmployeeRepository:   employeeRepo,
		loc:                  loc,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// clock returns the current time in the shift timezone.
func (a *AttendanceServiceImpl) clock() time.Time {
	return a.now().In(a.loc)
}

type requester struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

func requesterFromContext(ctx context.Context) (requester, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return requester{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var r requester
	r.UserID, _ = claims["user_id"].(string)
	r.EmployeeID, _ = claims["employee_id"].(string)
	role, _ := claims["role"].(string)
	r.Role = user.Role(role)
	return r, nil
}

func (a *AttendanceServiceImpl) currentEmployeeID(ctx context.Context) (string, error) {
	r, err := requesterFromContext(ctx)
	if err != nil {
		return "", err
	}
	if r.EmployeeID == "" {
		return "", attendance.ErrEmployeeIDRequired
	}
	return r.EmployeeID, nil
}

func (a *AttendanceServiceImpl) activeEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := a.currentEmployeeID(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	emp, err := a.activeEmployee(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock()
	event := shift.EventAt(now)
	decision := shift.ClassifyCheckIn(event)
	if !shift.InShiftWindow(event) {
		slog.Warn("check-in outside shift window",
			"employee_id", employeeID,
			"check_in", now.Format(time.RFC3339),
			"shift_date", decision.ShiftDate.Format(validator.DateLayout),
		)
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, decision.ShiftDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	var ipAddress *string
	if req.IPAddress != "" {
		ipAddress = &req.IPAddress
	}

	// A generated absent row for this shift is turned into a real check-in.
	if existing != nil {
		if existing.CheckInTime != nil || existing.Status != attendance.StatusAbsent {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		existing.CheckInTime = &now
		existing.DeviceInfo = req.DeviceInfo
		existing.IPAddress = ipAddress
		existing.ApplyDecision(decision)
		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
		existing.EmployeeName = emp.FullName
		existing.EmployeeCode = emp.EmployeeCode
		return a.mapAttendanceToResponse(*existing), nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	record := attendance.Attendance{
		ID:          id.String(),
		EmployeeID:  employeeID,
		CheckInTime: &now,
		DeviceInfo:  req.DeviceInfo,
		IPAddress:   ipAddress,
	}
	record.ApplyDecision(decision)
	record.ApplyWorkSpan(shift.WorkSpan{OvertimeHours: shift.OvertimeHours(0)})

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	created.EmployeeName = emp.FullName
	created.EmployeeCode = emp.EmployeeCode

	slog.Info("employee checked in",
		"employee_id", employeeID,
		"shift_date", decision.ShiftDate.Format(validator.DateLayout),
		"status", decision.Status,
		"late_by_minutes", decision.LateByMinutes,
	)

	return a.mapAttendanceToResponse(created), nil
}

// findOpenRecord looks for an open check-in on the current shift date, then the one before.
func (a *AttendanceServiceImpl) findOpenRecord(ctx context.Context, employeeID string, now time.Time) (attendance.Attendance, error) {
	current := shift.CurrentShiftDate(now)
	closed := false

	for _, date := range []time.Time{current, current.AddDate(0, 0, -1)} {
		rec, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
		}
		if rec == nil {
			continue
		}
		if rec.IsOpen() {
			return *rec, nil
		}
		if date.Equal(current) && rec.CheckOutTime != nil {
			closed = true
		}
	}

	if closed {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	return attendance.Attendance{}, attendance.ErrNoActiveCheckIn
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := a.currentEmployeeID(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock()
	record, err := a.findOpenRecord(ctx, employeeID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	span := shift.ComputeWorkSpan(
		shift.EventAt(record.CheckInTime.In(a.loc)),
		shift.EventAt(now),
		record.Breaks.TotalMinutes,
	)
	record.CheckOutTime = &now
	record.ApplyWorkSpan(span)
	if req.Remarks != nil {
		record.Remarks = req.Remarks
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	slog.Info("employee checked out",
		"employee_id", employeeID,
		"shift_date", record.AttendanceDate.Format(validator.DateLayout),
		"net_minutes", span.NetMinutes,
		"overtime_minutes", span.OvertimeMinutes,
	)

	return a.mapAttendanceToResponse(record), nil
}

// RecordBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordBreak(ctx context.Context, req attendance.RecordBreakRequest) (attendance.BreakResponse, error) {
	resolved, err := req.Resolve()
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	employeeID, err := a.currentEmployeeID(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	record, err := a.findOpenRecord(ctx, employeeID, a.clock())
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.BreakResponse{}, attendance.ErrNoActiveCheckIn
		}
		return attendance.BreakResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to generate break id: %w", err)
	}

	var created attendance.Break
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		created, err = a.BreakRepository.Create(txCtx, attendance.Break{
			ID:              id.String(),
			AttendanceID:    record.ID,
			EmployeeID:      employeeID,
			Type:            resolved.Type,
			StartTime:       resolved.StartTime,
			EndTime:         resolved.EndTime,
			DurationMinutes: resolved.Minutes,
			Reason:          req.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create break: %w", err)
		}

		if err := a.AttendanceRepository.AddBreak(txCtx, record.ID, resolved.Type, resolved.Minutes); err != nil {
			return fmt.Errorf("failed to update break counters: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	created.AttendanceDate = record.AttendanceDate
	return a.mapBreakToResponse(created), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayAttendanceResponse, error) {
	employeeID, err := a.currentEmployeeID(ctx)
	if err != nil {
		return attendance.TodayAttendanceResponse{}, err
	}

	shiftDate := shift.CurrentShiftDate(a.clock())
	resp := attendance.TodayAttendanceResponse{
		ShiftDate: shiftDate.Format(validator.DateLayout),
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, shiftDate)
	if err != nil {
		return attendance.TodayAttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return resp, nil
	}

	records := []attendance.Attendance{*record}
	if err := a.attachBreaks(ctx, records); err != nil {
		return attendance.TodayAttendanceResponse{}, err
	}

	mapped := a.mapAttendanceToResponse(records[0])
	resp.Attendance = &mapped
	resp.CheckedIn = record.CheckInTime != nil
	resp.CheckedOut = record.CheckOutTime != nil
	return resp, nil
}

// GetMyMonthly implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyMonthly(ctx context.Context, filter attendance.MonthlyFilter) (attendance.MonthlyAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	employeeID, err := a.currentEmployeeID(ctx)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	start := shift.CurrentShiftDate(a.clock())
	if filter.Month != "" {
		m, _ := validator.IsValidMonth(filter.Month)
		start = m
	}
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, a.loc)
	end := start.AddDate(0, 1, -1)

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, fmt.Errorf("failed to list monthly attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, a.mapAttendanceToResponse(r))
	}

	return attendance.MonthlyAttendanceResponse{
		Month:       start.Format(validator.MonthLayout),
		Summary:     Summarize(records),
		Attendances: responses,
	}, nil
}

// Summarize totals a set of attendance records.
func Summarize(records []attendance.Attendance) attendance.MonthlySummary {
	var s attendance.MonthlySummary
	for _, r := range records {
		s.TotalDays++
		switch r.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusLate:
			s.PresentDays++
			s.LateDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		}
		s.TotalLateMinutes += r.LateByMinutes
		s.TotalNetMinutes += r.NetMinutes
		s.TotalOvertimeMinutes += r.OvertimeMinutes
	}
	s.TotalOvertimeHours = shift.OvertimeHours(s.TotalOvertimeMinutes).StringFixed(2)
	return s
}

// GetByID implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	r, err := requesterFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if !user.HasPermission(r.Role, user.PermissionAttendanceViewAll) && record.EmployeeID != r.EmployeeID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	records := []attendance.Attendance{record}
	if err := a.attachBreaks(ctx, records); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return a.mapAttendanceToResponse(records[0]), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	if err := a.attachBreaks(ctx, records); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, a.mapAttendanceToResponse(r))
	}

	totalPages, showing := paginate(total, filter.Page, filter.Limit)
	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// ListWithAbsent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListWithAbsent(ctx context.Context, filter attendance.BoardFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	date := shift.CurrentShiftDate(a.clock())
	if filter.Date != nil && *filter.Date != "" {
		d, _ := validator.IsValidDate(*filter.Date)
		date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, a.loc)
	}

	records, err := a.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	employees, err := a.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	seen := make(map[string]bool, len(records))
	rows := make([]attendance.Attendance, 0, len(employees))
	for _, r := range records {
		seen[r.EmployeeID] = true
		rows = append(rows, r)
	}
	synthesized := make(map[string]bool)
	for _, emp := range employees {
		if seen[emp.ID] || !emp.WasEmployedOn(date) {
			continue
		}
		absent := attendance.NewAbsent(emp.ID, date)
		absent.EmployeeName = emp.FullName
		absent.EmployeeCode = emp.EmployeeCode
		absent.EmployeeEmail = emp.Email
		rows = append(rows, absent)
		synthesized[emp.ID] = true
	}

	if filter.Status != nil && *filter.Status != "" {
		filtered := rows[:0]
		for _, r := range rows {
			if string(r.Status) == *filter.Status {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EmployeeName < rows[j].EmployeeName
	})

	total := int64(len(rows))
	from := min((filter.Page-1)*filter.Limit, len(rows))
	to := min(from+filter.Limit, len(rows))
	page := rows[from:to]

	if err := a.attachBreaks(ctx, page); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(page))
	for _, r := range page {
		resp := a.mapAttendanceToResponse(r)
		resp.IsGeneratedAbsent = r.ID == "" && synthesized[r.EmployeeID]
		responses = append(responses, resp)
	}

	totalPages, showing := paginate(total, filter.Page, filter.Limit)
	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// Update implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.CheckInTime != nil {
		t, _ := validator.IsValidDateTime(*req.CheckInTime)
		t = t.In(a.loc)
		record.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t, _ := validator.IsValidDateTime(*req.CheckOutTime)
		t = t.In(a.loc)
		record.CheckOutTime = &t
	}
	if req.Remarks != nil {
		record.Remarks = req.Remarks
	}

	if record.CheckOutTime != nil {
		if record.CheckInTime == nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{{
				Field:   "check_in_time",
				Message: "check_in_time is required when setting check_out_time",
			}}
		}
		if !record.CheckOutTime.After(*record.CheckInTime) {
			return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeEntry
		}
	}

	record.Recompute(a.loc)

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return a.mapAttendanceToResponse(record), nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// GenerateAbsentRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GenerateAbsentRecords(ctx context.Context, employeeID string) (attendance.GenerateAbsentResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return attendance.GenerateAbsentResponse{}, validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		}}
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.GenerateAbsentResponse{}, err
		}
		return attendance.GenerateAbsentResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	from := time.Date(emp.JoiningDate.Year(), emp.JoiningDate.Month(), emp.JoiningDate.Day(), 0, 0, 0, 0, a.loc)
	to := shift.CurrentShiftDate(a.clock()).AddDate(0, 0, -1)
	resp := attendance.GenerateAbsentResponse{
		EmployeeID: employeeID,
		From:       from.Format(validator.DateLayout),
		To:         to.Format(validator.DateLayout),
	}
	if to.Before(from) {
		return resp, nil
	}

	existing, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return attendance.GenerateAbsentResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	recorded := make(map[string]bool, len(existing))
	for _, r := range existing {
		recorded[r.AttendanceDate.Format(validator.DateLayout)] = true
	}

	var absents []attendance.Attendance
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if shift.IsWeekend(d) || recorded[d.Format(validator.DateLayout)] || !emp.WasEmployedOn(d) {
			continue
		}
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.GenerateAbsentResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		absent := attendance.NewAbsent(employeeID, d)
		absent.ID = id.String()
		absents = append(absents, absent)
	}

	if len(absents) == 0 {
		return resp, nil
	}

	created, err := a.AttendanceRepository.CreateAbsentBulk(ctx, absents)
	if err != nil {
		return attendance.GenerateAbsentResponse{}, fmt.Errorf("failed to create absent records: %w", err)
	}
	resp.Created = created
	return resp, nil
}

// ListBreaks implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListBreaks(ctx context.Context, filter attendance.BreakFilter) (attendance.ListBreakResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListBreakResponse{}, err
	}

	breaks, total, err := a.BreakRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListBreakResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	responses := make([]attendance.BreakResponse, 0, len(breaks))
	for _, b := range breaks {
		responses = append(responses, a.mapBreakToResponse(b))
	}

	totalPages, showing := paginate(total, filter.Page, filter.Limit)
	return attendance.ListBreakResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Breaks:     responses,
	}, nil
}

func (a *AttendanceServiceImpl) attachBreaks(ctx context.Context, records []attendance.Attendance) error {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if r.ID != "" && r.Breaks.TotalBreaks > 0 {
			ids = append(ids, r.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	byAttendance, err := a.BreakRepository.ListByAttendanceIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list breaks: %w", err)
	}
	for i := range records {
		records[i].BreakLog = byAttendance[records[i].ID]
	}
	return nil
}

func paginate(total int64, page, limit int) (int, string) {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	if total == 0 || int64((page-1)*limit) >= total {
		showing = fmt.Sprintf("0 of %d", total)
	}
	return totalPages, showing
}
