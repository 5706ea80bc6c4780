package legacy

import (
	"context"
	"testing"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/employee"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/legacy"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pkt = time.FixedZone("PKT", 5*60*60)

type fakeLegacyRepo struct {
	records []legacy.Attendance
	breaks  map[int64][]legacy.Break
}

func (f *fakeLegacyRepo) ListAttendance(context.Context, string, string) ([]legacy.Attendance, error) {
	return f.records, nil
}

func (f *fakeLegacyRepo) ListBreaks(context.Context, string, string) (map[int64][]legacy.Break, error) {
	return f.breaks, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	rows    map[string]attendance.Attendance
	upserts int
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, a attendance.Attendance) (bool, error) {
	f.upserts++
	key := a.EmployeeID + "|" + a.AttendanceDate.Format(validator.DateLayout)
	_, exists := f.rows[key]
	f.rows[key] = a
	return !exists, nil
}

type fakeBreakRepo struct {
	attendance.BreakRepository
	created []attendance.Break
}

func (f *fakeBreakRepo) Create(_ context.Context, b attendance.Break) (attendance.Break, error) {
	f.created = append(f.created, b)
	return b, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byLegacy map[int64]string
	lookups  int
}

func (f *fakeEmployeeRepo) GetByLegacyID(_ context.Context, legacyID int64) (employee.Employee, error) {
	f.lookups++
	id, ok := f.byLegacy[legacyID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

type noopTx struct{}

func (noopTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func str(s string) *string { return &s }

func day(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

func legacyFixture() *fakeLegacyRepo {
	return &fakeLegacyRepo{
		records: []legacy.Attendance{
			// stored as on time by the old inline math
			{ID: 1, EmployeeID: 2, AttendanceDate: day(10), CheckIn: str("22:30:00"), CheckOut: str("07:00:00"),
				Status: "Present", GrossMinutes: 510, NetMinutes: 480, TotalBreakMinutes: 35},
			{ID: 2, EmployeeID: 2, AttendanceDate: day(11), CheckIn: str("21:05:00"), CheckOut: str("07:30:00"),
				Status: "Present", GrossMinutes: 625, NetMinutes: 625, OvertimeMinutes: 85},
			{ID: 3, EmployeeID: 99, AttendanceDate: day(10), CheckIn: str("21:00:00"), Status: "Present"},
			{ID: 4, EmployeeID: 3, AttendanceDate: day(10), Status: "Absent"},
			{ID: 5, EmployeeID: 3, AttendanceDate: day(11), CheckIn: str("bogus"), Status: "Present"},
			{ID: 6, EmployeeID: 3, AttendanceDate: day(12), CheckIn: str("01:00:00"), CheckOut: str("06:30:00"),
				Status: "Late", LateByMinutes: 165, GrossMinutes: 330, NetMinutes: 330},
		},
		breaks: map[int64][]legacy.Break{
			1: {
				{ID: 10, AttendanceID: 1, BreakType: "Dinner", Start: str("23:30:00"), End: str("00:00:00"), DurationMinutes: 30},
				{ID: 11, AttendanceID: 1, BreakType: "Other", DurationMinutes: 5, Reason: str("call")},
			},
		},
	}
}

type importerFixture struct {
	svc         *ImporterImpl
	attendances *fakeAttendanceRepo
	breaks      *fakeBreakRepo
	employees   *fakeEmployeeRepo
}

func newFixture() importerFixture {
	f := importerFixture{
		attendances: &fakeAttendanceRepo{rows: map[string]attendance.Attendance{}},
		breaks:      &fakeBreakRepo{},
		employees:   &fakeEmployeeRepo{byLegacy: map[int64]string{2: "emp-2", 3: "emp-3"}},
	}
	f.svc = NewImporter(noopTx{}, legacyFixture(), f.attendances, f.breaks, f.employees, pkt).(*ImporterImpl)
	return f
}

func TestImport(t *testing.T) {
	f := newFixture()
	req := legacy.ImportRequest{From: "2025-03-01", To: "2025-03-31"}

	res, err := f.svc.Import(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, legacy.ImportResult{
		Read: 6, Imported: 4, Created: 4, Recomputed: 1, Skipped: 2, Breaks: 2,
	}, res)
	// one lookup per legacy employee
	assert.Equal(t, 3, f.employees.lookups)

	late := f.attendances.rows["emp-2|2025-03-10"]
	assert.Equal(t, attendance.StatusLate, late.Status)
	assert.Equal(t, 15, late.LateByMinutes)
	assert.True(t, late.CheckInTime.Equal(time.Date(2025, 3, 10, 22, 30, 0, 0, pkt)))
	assert.True(t, late.CheckOutTime.Equal(time.Date(2025, 3, 11, 7, 0, 0, 0, pkt)))
	assert.Equal(t, 2, late.Breaks.TotalBreaks)
	assert.Equal(t, 35, late.Breaks.TotalMinutes)
	assert.Equal(t, 1, late.Breaks.DinnerCount)
	assert.Equal(t, 510, late.GrossMinutes)
	assert.Equal(t, 475, late.NetMinutes)

	overtime := f.attendances.rows["emp-2|2025-03-11"]
	assert.Equal(t, 85, overtime.OvertimeMinutes)
	assert.Equal(t, "1.42", overtime.OvertimeHours.StringFixed(2))

	absent := f.attendances.rows["emp-3|2025-03-10"]
	assert.Equal(t, attendance.StatusAbsent, absent.Status)
	assert.Nil(t, absent.CheckInTime)

	morning := f.attendances.rows["emp-3|2025-03-12"]
	assert.True(t, morning.CheckInTime.Equal(time.Date(2025, 3, 13, 1, 0, 0, 0, pkt)))
	assert.Equal(t, 165, morning.LateByMinutes)

	require.Len(t, f.breaks.created, 2)
	dinner := f.breaks.created[0]
	assert.Equal(t, late.ID, dinner.AttendanceID)
	assert.Equal(t, attendance.BreakDinner, dinner.Type)
	assert.True(t, dinner.EndTime.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, pkt)))
	assert.Equal(t, attendance.BreakOther, f.breaks.created[1].Type)
	assert.Nil(t, f.breaks.created[1].StartTime)
}

func TestImportIsRepeatable(t *testing.T) {
	f := newFixture()
	req := legacy.ImportRequest{From: "2025-03-01", To: "2025-03-31"}

	_, err := f.svc.Import(context.Background(), req)
	require.NoError(t, err)

	res, err := f.svc.Import(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Updated)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Breaks)
	assert.Len(t, f.breaks.created, 2)
}

func TestImportDryRun(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Import(context.Background(), legacy.ImportRequest{From: "2025-03-01", To: "2025-03-31", DryRun: true})
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.Equal(t, 4, res.Imported)
	assert.Equal(t, 1, res.Recomputed)
	assert.Zero(t, f.attendances.upserts)
	assert.Empty(t, f.breaks.created)
}

func TestImportValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Import(context.Background(), legacy.ImportRequest{From: "2025-03-31", To: "2025-03-01"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "to", verrs[0].Field)
}

func TestClockOn(t *testing.T) {
	svc := &ImporterImpl{loc: pkt}
	shiftDate := time.Date(2025, 3, 10, 0, 0, 0, 0, pkt)
	in := time.Date(2025, 3, 10, 22, 0, 0, 0, pkt)

	tests := []struct {
		clock string
		after *time.Time
		want  time.Time
	}{
		{"21:00:00", nil, time.Date(2025, 3, 10, 21, 0, 0, 0, pkt)},
		{"05:59", nil, time.Date(2025, 3, 11, 5, 59, 0, 0, pkt)},
		{"23:30:00", &in, time.Date(2025, 3, 10, 23, 30, 0, 0, pkt)},
		{"07:00:00", &in, time.Date(2025, 3, 11, 7, 0, 0, 0, pkt)},
	}
	for _, tt := range tests {
		got, err := svc.clockOn(shiftDate, tt.clock, tt.after)
		require.NoError(t, err, tt.clock)
		assert.True(t, got.Equal(tt.want), "%s: got %s", tt.clock, got)
	}

	_, err := svc.clockOn(shiftDate, "25:00", nil)
	assert.ErrorIs(t, err, legacy.ErrInvalidClock)
}
