package attendance

import (
	"testing"

	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestRecordBreakRequestResolve(t *testing.T) {
	t.Run("duration wins over times", func(t *testing.T) {
		req := RecordBreakRequest{
			BreakType:       "dinner",
			DurationMinutes: intPtr(25),
			StartTime:       strPtr("2025-03-10T23:00:00+05:00"),
			EndTime:         strPtr("2025-03-10T23:40:00+05:00"),
		}

		got, err := req.Resolve()
		require.NoError(t, err)
		assert.Equal(t, BreakDinner, got.Type)
		assert.Equal(t, 25, got.Minutes)
		assert.NotNil(t, got.StartTime)
	})

	t.Run("duration from times across midnight", func(t *testing.T) {
		req := RecordBreakRequest{
			BreakType: "Smoke",
			StartTime: strPtr("2025-03-10T23:55:00+05:00"),
			EndTime:   strPtr("2025-03-11T00:07:30+05:00"),
		}

		got, err := req.Resolve()
		require.NoError(t, err)
		assert.Equal(t, 12, got.Minutes)
	})

	t.Run("unknown break type", func(t *testing.T) {
		req := RecordBreakRequest{BreakType: "Nap", DurationMinutes: intPtr(5)}

		err := req.Validate()
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "break_type")
	})

	t.Run("missing duration and times", func(t *testing.T) {
		req := RecordBreakRequest{BreakType: "Prayer"}

		err := req.Validate()
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "break_duration_minutes")
	})

	t.Run("end before start", func(t *testing.T) {
		req := RecordBreakRequest{
			BreakType: "Washroom",
			StartTime: strPtr("2025-03-10T23:10:00Z"),
			EndTime:   strPtr("2025-03-10T23:00:00Z"),
		}

		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "break_end_time")
	})

	t.Run("only one time given", func(t *testing.T) {
		req := RecordBreakRequest{BreakType: "Other", StartTime: strPtr("2025-03-10T23:10:00Z")}

		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "break_end_time")
	})

	t.Run("too long", func(t *testing.T) {
		req := RecordBreakRequest{BreakType: "Other", DurationMinutes: intPtr(721)}
		assert.Error(t, req.Validate())
	})
}

func TestAttendanceFilterDefaults(t *testing.T) {
	f := AttendanceFilter{}
	require.NoError(t, f.Validate())

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "date", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)
}

func TestAttendanceFilterRejectsBadInput(t *testing.T) {
	f := AttendanceFilter{
		Limit:     500,
		Status:    strPtr("OnLeave"),
		StartDate: strPtr("2025-03-10"),
		EndDate:   strPtr("2025-03-01"),
		SortBy:    "salary",
	}

	var errs validator.ValidationErrors
	require.ErrorAs(t, f.Validate(), &errs)

	m := errs.ToMap()
	assert.Contains(t, m, "limit")
	assert.Contains(t, m, "status")
	assert.Contains(t, m, "end_date")
	assert.Contains(t, m, "sort_by")
}

func TestBreakFilterCanonicalisesType(t *testing.T) {
	f := BreakFilter{BreakType: strPtr("smoke")}
	require.NoError(t, f.Validate())
	assert.Equal(t, "Smoke", *f.BreakType)
}

func TestUpdateAttendanceRequestValidate(t *testing.T) {
	req := UpdateAttendanceRequest{ID: "0192f0c4-1a2b-7c3d-8e4f-a1b2c3d4e5f6"}
	assert.Error(t, req.Validate())

	req.CheckInTime = strPtr("2025-03-10T22:00:00+05:00")
	req.CheckOutTime = strPtr("2025-03-10T21:00:00+05:00")
	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Contains(t, errs.ToMap(), "check_out_time")

	req.CheckOutTime = strPtr("2025-03-11T06:10:00+05:00")
	assert.NoError(t, req.Validate())
}

func TestMonthlyFilterValidate(t *testing.T) {
	assert.NoError(t, (&MonthlyFilter{}).Validate())
	assert.NoError(t, (&MonthlyFilter{Month: "2025-02"}).Validate())
	assert.Error(t, (&MonthlyFilter{Month: "02-2025"}).Validate())
}
