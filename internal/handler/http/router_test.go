package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/report"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/user"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAttendanceID = "0192f0c4-1a2b-7c3d-8e4f-a1b2c3d4e5f6"

type fakeAttendanceService struct {
	checkIn   attendance.CheckInRequest
	deleted   string
	checkInFn func() error
}

func (f *fakeAttendanceService) CheckIn(_ context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	f.checkIn = req
	if f.checkInFn != nil {
		if err := f.checkInFn(); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}
	return attendance.AttendanceResponse{AttendanceDate: "2025-03-10", Status: "Present", OnTime: true}, nil
}

func (f *fakeAttendanceService) CheckOut(context.Context, attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) RecordBreak(context.Context, attendance.RecordBreakRequest) (attendance.BreakResponse, error) {
	return attendance.BreakResponse{BreakType: "Smoke", DurationMinutes: 5}, nil
}

func (f *fakeAttendanceService) GetToday(context.Context) (attendance.TodayAttendanceResponse, error) {
	return attendance.TodayAttendanceResponse{ShiftDate: "2025-03-10"}, nil
}

func (f *fakeAttendanceService) GetMyMonthly(_ context.Context, filter attendance.MonthlyFilter) (attendance.MonthlyAttendanceResponse, error) {
	return attendance.MonthlyAttendanceResponse{Month: filter.Month}, nil
}

func (f *fakeAttendanceService) GetByID(_ context.Context, id string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{ID: id}, nil
}

func (f *fakeAttendanceService) List(context.Context, attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (f *fakeAttendanceService) ListWithAbsent(_ context.Context, filter attendance.BoardFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{
		TotalCount:  2,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  1,
		Showing:     "1-2 of 2",
		Attendances: []attendance.AttendanceResponse{{Status: "Present"}, {Status: "Absent", IsGeneratedAbsent: true}},
	}, nil
}

func (f *fakeAttendanceService) Update(_ context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{ID: req.ID}, nil
}

func (f *fakeAttendanceService) Delete(_ context.Context, id string) error {
	f.deleted = id
	return nil
}

func (f *fakeAttendanceService) GenerateAbsentRecords(_ context.Context, employeeID string) (attendance.GenerateAbsentResponse, error) {
	return attendance.GenerateAbsentResponse{EmployeeID: employeeID}, nil
}

func (f *fakeAttendanceService) ListBreaks(context.Context, attendance.BreakFilter) (attendance.ListBreakResponse, error) {
	return attendance.ListBreakResponse{}, nil
}

type fakeDashboardService struct{}

func (fakeDashboardService) GetDashboard(context.Context) (*dashboard.DashboardResponse, error) {
	return &dashboard.DashboardResponse{ShiftDate: "2025-03-10"}, nil
}

func (fakeDashboardService) GetShiftStats(_ context.Context, date string) (*dashboard.ShiftStatsResponse, error) {
	return &dashboard.ShiftStatsResponse{ShiftDate: date}, nil
}

type fakeReportService struct{}

func (fakeReportService) AttendanceSummary(_ context.Context, req report.PeriodRequest) (report.AttendanceSummaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceSummaryReport{}, err
	}
	return report.AttendanceSummaryReport{StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

func (fakeReportService) OvertimeReport(_ context.Context, req report.PeriodRequest) (report.OvertimeReport, error) {
	return report.OvertimeReport{StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

func (fakeReportService) ExportAttendanceSummary(_ context.Context, req report.PeriodRequest) (report.ExportFile, error) {
	return report.ExportFile{
		FileName:    "attendance_summary_" + req.StartDate + "_" + req.EndDate + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("PK"),
	}, nil
}

func (fakeReportService) ExportOvertimeReport(context.Context, report.PeriodRequest) (report.ExportFile, error) {
	return report.ExportFile{}, report.ErrNoDataFound
}

type routerFixture struct {
	router     http.Handler
	jwt        jwt.Service
	attendance *fakeAttendanceService
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	jwtService := newTestJWTService(t)
	attendanceSvc := &fakeAttendanceService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(logger, nil, jwtService, Handlers{
		Auth:       NewAuthHandler(jwtService, &fakeAuthService{}),
		Attendance: NewAttendanceHandler(attendanceSvc),
		Dashboard:  NewDashboardHandler(fakeDashboardService{}),
		Report:     NewReportHandler(fakeReportService{}),
	})
	return routerFixture{router: router, jwt: jwtService, attendance: attendanceSvc}
}

func (f routerFixture) do(t *testing.T, method, target string, role user.Role, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if role != "" {
		employeeID := "emp-1"
		token, _, err := f.jwt.GenerateAccessToken("user-1", "user@example.com", &employeeID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequiresAccessToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	refresh, _, err := f.jwt.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/today", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CheckInForwardsClientIP(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", bytes.NewBufferString(`{"device_info":"kiosk-2"}`))
	employeeID := "emp-1"
	token, _, err := f.jwt.GenerateAccessToken("user-1", "user@example.com", &employeeID, user.RoleEmployee)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "203.0.113.9", f.attendance.checkIn.IPAddress)
	require.NotNil(t, f.attendance.checkIn.DeviceInfo)
	assert.Equal(t, "kiosk-2", *f.attendance.checkIn.DeviceInfo)
}

func TestRouter_CheckInWithoutBody(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", user.RoleEmployee, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, f.attendance.checkIn.DeviceInfo)
}

func TestRouter_AlreadyCheckedIn(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.checkInFn = func() error { return attendance.ErrAlreadyCheckedIn }

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", user.RoleEmployee, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_RecordBreakValidation(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/breaks", user.RoleEmployee, bytes.NewBufferString(`{"break_type":"Nap","break_duration_minutes":10}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/attendance/breaks", user.RoleEmployee, bytes.NewBufferString(`{"break_type":"smoke","break_duration_minutes":5}`))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_MonthValidation(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/my?month=2025-13", user.RoleEmployee, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/attendance/my?month=2025-03", user.RoleEmployee, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Permissions(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		name   string
		method string
		target string
		role   user.Role
		status int
	}{
		{"employee cannot list", http.MethodGet, "/api/v1/attendance", user.RoleEmployee, http.StatusForbidden},
		{"hr lists", http.MethodGet, "/api/v1/attendance", user.RoleHR, http.StatusOK},
		{"employee reads own record", http.MethodGet, "/api/v1/attendance/" + testAttendanceID, user.RoleEmployee, http.StatusOK},
		{"malformed id", http.MethodGet, "/api/v1/attendance/42", user.RoleEmployee, http.StatusUnprocessableEntity},
		{"hr cannot delete", http.MethodDelete, "/api/v1/attendance/" + testAttendanceID, user.RoleHR, http.StatusForbidden},
		{"admin deletes", http.MethodDelete, "/api/v1/attendance/" + testAttendanceID, user.RoleAdmin, http.StatusOK},
		{"employee cannot see dashboard", http.MethodGet, "/api/v1/dashboard", user.RoleEmployee, http.StatusForbidden},
		{"hr sees dashboard", http.MethodGet, "/api/v1/dashboard", user.RoleHR, http.StatusOK},
		{"employee cannot see reports", http.MethodGet, "/api/v1/reports/overtime?start_date=2025-03-01&end_date=2025-03-31", user.RoleEmployee, http.StatusForbidden},
		{"hr generates absent", http.MethodPost, "/api/v1/attendance/generate-absent/" + testAttendanceID, user.RoleHR, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.target, tt.role, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, testAttendanceID, f.attendance.deleted)
}

func TestRouter_BoardMeta(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/board?date=2025-03-10&limit=50", user.RoleHR, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	require.NotNil(t, body.Meta)
	assert.Equal(t, int64(2), body.Meta.TotalItems)
	assert.Equal(t, 50, body.Meta.Limit)
	assert.Equal(t, "1-2 of 2", body.Meta.Showing)
	assert.Len(t, body.Data, 2)
}

func TestRouter_BoardRejectsBadPage(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/attendance/board?page=abc", user.RoleHR, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_Reports(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/reports/attendance-summary?start_date=2025-03-31&end_date=2025-03-01", user.RoleHR, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/reports/attendance-summary/export?start_date=2025-03-01&end_date=2025-03-31", user.RoleHR, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance_summary_2025-03-01_2025-03-31.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/reports/overtime/export?start_date=2025-03-01&end_date=2025-03-31", user.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
