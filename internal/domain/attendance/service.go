package attendance

import "context"

type AttendanceService interface {
	// Employee self service
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	RecordBreak(ctx context.Context, req RecordBreakRequest) (BreakResponse, error)
	GetToday(ctx context.Context) (TodayAttendanceResponse, error)
	GetMyMonthly(ctx context.Context, filter MonthlyFilter) (MonthlyAttendanceResponse, error)

	// HR / admin
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	ListWithAbsent(ctx context.Context, filter BoardFilter) (ListAttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	GenerateAbsentRecords(ctx context.Context, employeeID string) (GenerateAbsentResponse, error)
	ListBreaks(ctx context.Context, filter BreakFilter) (ListBreakResponse, error)
}
