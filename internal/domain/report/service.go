package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	AttendanceSummary(ctx context.Context, req PeriodRequest) (AttendanceSummaryReport, error)
	OvertimeReport(ctx context.Context, req PeriodRequest) (OvertimeReport, error)

	// Export* render the same data as an .xlsx workbook
	ExportAttendanceSummary(ctx context.Context, req PeriodRequest) (ExportFile, error)
	ExportOvertimeReport(ctx context.Context, req PeriodRequest) (ExportFile, error)
}
