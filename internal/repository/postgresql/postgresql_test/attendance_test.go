package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/employee"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/user"
	"github.com/nightshift-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkedIn builds a record the way the service does, through the shift resolver
func checkedIn(t *testing.T, employeeID string, in time.Time) attendance.Attendance {
	att := attendance.Attendance{
		ID:          newID(t),
		EmployeeID:  employeeID,
		CheckInTime: &in,
		DeviceInfo:  ptr("kiosk-1"),
	}
	att.Recompute(pkt)
	return att
}

func TestAttendanceRepository_Create_Success(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	empID := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")

	// 01:30 belongs to the shift of the 9th
	att := checkedIn(t, empID, time.Date(2025, 3, 10, 1, 30, 0, 0, pkt))
	created, err := repo.Create(ctx, att)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.GetByEmployeeAndDate(ctx, empID, time.Date(2025, 3, 9, 0, 0, 0, 0, pkt))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, att.ID, found.ID)
	assert.Equal(t, attendance.StatusLate, found.Status)
	assert.Equal(t, 195, found.LateByMinutes)
	assert.Equal(t, "EMP-001", found.EmployeeCode)

	none, err := repo.GetByEmployeeAndDate(ctx, empID, time.Date(2025, 3, 10, 0, 0, 0, 0, pkt))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAttendanceRepository_Create_Duplicate(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	empID := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")

	_, err := repo.Create(ctx, checkedIn(t, empID, time.Date(2025, 3, 9, 21, 0, 0, 0, pkt)))
	require.NoError(t, err)

	_, err = repo.Create(ctx, checkedIn(t, empID, time.Date(2025, 3, 10, 2, 0, 0, 0, pkt)))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceRepository_CreateAbsentBulk_Idempotent(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	first := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")
	second := createTestEmployee(t, "EMP-002", "Bilal Ahmed", "active")
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, pkt)

	_, err := repo.Create(ctx, checkedIn(t, first, time.Date(2025, 3, 10, 21, 5, 0, 0, pkt)))
	require.NoError(t, err)

	rows := func() []attendance.Attendance {
		a, b := attendance.NewAbsent(first, date), attendance.NewAbsent(second, date)
		a.ID, b.ID = newID(t), newID(t)
		return []attendance.Attendance{a, b}
	}

	created, err := repo.CreateAbsentBulk(ctx, rows())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = repo.CreateAbsentBulk(ctx, rows())
	require.NoError(t, err)
	assert.Zero(t, created)

	records, err := repo.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)
	assert.Equal(t, attendance.StatusAbsent, records[1].Status)
}

func TestAttendanceRepository_AddBreak(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	empID := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")

	att, err := repo.Create(ctx, checkedIn(t, empID, time.Date(2025, 3, 10, 21, 0, 0, 0, pkt)))
	require.NoError(t, err)

	require.NoError(t, repo.AddBreak(ctx, att.ID, attendance.BreakSmoke, 7))
	require.NoError(t, repo.AddBreak(ctx, att.ID, attendance.BreakOther, 10))

	got, err := repo.GetByID(ctx, att.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Breaks.TotalBreaks)
	assert.Equal(t, 17, got.Breaks.TotalMinutes)
	assert.Equal(t, 1, got.Breaks.SmokeCount)
	assert.Equal(t, 7, got.Breaks.SmokeMinutes)

	err = repo.AddBreak(ctx, newID(t), attendance.BreakDinner, 20)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_ListOpenCheckedInBefore(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	empID := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")
	otherID := createTestEmployee(t, "EMP-002", "Bilal Ahmed", "active")

	stale, err := repo.Create(ctx, checkedIn(t, empID, time.Date(2025, 3, 8, 21, 0, 0, 0, pkt)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, checkedIn(t, otherID, time.Date(2025, 3, 10, 21, 0, 0, 0, pkt)))
	require.NoError(t, err)

	open, err := repo.ListOpenCheckedInBefore(ctx, time.Date(2025, 3, 10, 12, 0, 0, 0, pkt))
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, stale.ID, open[0].ID)
}

func TestAttendanceRepository_Upsert(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	empID := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")

	att := checkedIn(t, empID, time.Date(2025, 3, 10, 21, 30, 0, 0, pkt))
	created, err := repo.Upsert(ctx, att)
	require.NoError(t, err)
	assert.True(t, created)

	out := time.Date(2025, 3, 11, 6, 30, 0, 0, pkt)
	att.ID = newID(t)
	att.CheckOutTime = &out
	att.Recompute(pkt)
	created, err = repo.Upsert(ctx, att)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.GetByEmployeeAndDate(ctx, empID, time.Date(2025, 3, 10, 0, 0, 0, 0, pkt))
	require.NoError(t, err)
	require.NotNil(t, got.CheckOutTime)
	assert.Equal(t, 540, got.GrossMinutes)
}

func TestTransactor_RollsBack(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	tx := postgresql.NewTransactor(testSetup.DB)
	empID := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")
	boom := errors.New("boom")

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, checkedIn(t, empID, time.Date(2025, 3, 10, 21, 0, 0, 0, pkt))); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByEmployeeAndDate(ctx, empID, time.Date(2025, 3, 10, 0, 0, 0, 0, pkt))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmployeeRepository_ListActive(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testSetup.DB)
	activeID := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")
	createTestEmployee(t, "EMP-002", "Bilal Ahmed", "resigned")

	employees, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, activeID, employees[0].ID)

	_, err = repo.GetByID(ctx, newID(t))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testSetup.DB)
	empID := createTestEmployee(t, "EMP-001", "Ayesha Khan", "active")

	_, err := testSetup.DB.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, employee_id)
		VALUES ($1, 'ayesha@example.com', 'hash', 'employee', $2)
	`, newID(t), empID)
	require.NoError(t, err)

	u, err := repo.GetByEmail(ctx, "Ayesha@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, u.Role)
	require.NotNil(t, u.EmployeeID)
	assert.Equal(t, empID, *u.EmployeeID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
