package report

import (
	"context"
	"fmt"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/report"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/shift"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/spreadsheet"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	report.ReportRepository
	loc *time.Location
	now func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, loc *time.Location) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
		loc:              loc,
		now:              time.Now,
	}
}

func (s *ReportServiceImpl) generatedAt() string {
	return s.now().In(s.loc).Format(time.RFC3339)
}

func (s *ReportServiceImpl) loadTotals(ctx context.Context, req report.PeriodRequest) ([]report.EmployeeTotals, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	totals, err := s.GetEmployeeTotals(ctx, req.StartDate, req.EndDate, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance data: %w", err)
	}
	return totals, nil
}

// AttendanceSummary returns per-employee attendance totals for the period
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req report.PeriodRequest) (report.AttendanceSummaryReport, error) {
	totals, err := s.loadTotals(ctx, req)
	if err != nil {
		return report.AttendanceSummaryReport{}, err
	}

	rows := make([]report.AttendanceSummaryRow, 0, len(totals))
	var sum report.AttendanceSummaryTotal
	for _, t := range totals {
		rows = append(rows, report.AttendanceSummaryRow{
			EmployeeID:        t.EmployeeID,
			EmployeeCode:      t.EmployeeCode,
			EmployeeName:      t.EmployeeName,
			Department:        t.Department,
			PresentDays:       t.PresentDays,
			LateDays:          t.LateDays,
			AbsentDays:        t.AbsentDays,
			TotalLateMinutes:  t.LateMinutes,
			TotalBreaks:       t.Breaks,
			TotalBreakMinutes: t.BreakMinutes,
			GrossMinutes:      t.GrossMinutes,
			NetMinutes:        t.NetMinutes,
			OvertimeMinutes:   t.OvertimeMinutes,
			OvertimeHours:     shift.OvertimeHours(t.OvertimeMinutes).StringFixed(2),
		})

		sum.Employees++
		sum.PresentDays += t.PresentDays
		sum.LateDays += t.LateDays
		sum.AbsentDays += t.AbsentDays
		sum.TotalLateMinutes += t.LateMinutes
		sum.NetMinutes += t.NetMinutes
		sum.OvertimeMinutes += t.OvertimeMinutes
	}
	sum.OvertimeHours = shift.OvertimeHours(sum.OvertimeMinutes).StringFixed(2)

	return report.AttendanceSummaryReport{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: s.generatedAt(),
		Employees:   rows,
		Totals:      sum,
	}, nil
}

// OvertimeReport lists employees who worked overtime in the period, with grand totals
func (s *ReportServiceImpl) OvertimeReport(ctx context.Context, req report.PeriodRequest) (report.OvertimeReport, error) {
	totals, err := s.loadTotals(ctx, req)
	if err != nil {
		return report.OvertimeReport{}, err
	}

	rows := []report.OvertimeRow{}
	var summary report.OvertimeTotal
	for _, t := range totals {
		if t.OvertimeMinutes == 0 {
			continue
		}
		rows = append(rows, report.OvertimeRow{
			EmployeeID:      t.EmployeeID,
			EmployeeCode:    t.EmployeeCode,
			EmployeeName:    t.EmployeeName,
			OvertimeDays:    t.OvertimeDays,
			OvertimeMinutes: t.OvertimeMinutes,
			OvertimeHours:   shift.OvertimeHours(t.OvertimeMinutes).StringFixed(2),
			AveragePerDay:   averageHours(t.OvertimeMinutes, t.OvertimeDays),
		})
		summary.TotalOvertimeMinutes += t.OvertimeMinutes
		summary.TotalOvertimeDays += t.OvertimeDays
	}
	summary.TotalOvertimeHours = shift.OvertimeHours(summary.TotalOvertimeMinutes).StringFixed(2)
	summary.AveragePerDay = averageHours(summary.TotalOvertimeMinutes, summary.TotalOvertimeDays)

	return report.OvertimeReport{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: s.generatedAt(),
		Employees:   rows,
		Summary:     summary,
	}, nil
}

// ExportAttendanceSummary renders AttendanceSummary as an .xlsx workbook
func (s *ReportServiceImpl) ExportAttendanceSummary(ctx context.Context, req report.PeriodRequest) (report.ExportFile, error) {
	data, err := s.AttendanceSummary(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	sheet := spreadsheet.Sheet{
		Name: "Attendance Summary",
		Headers: []string{
			"Employee Code", "Employee Name", "Department", "Present Days", "Late Days", "Absent Days",
			"Late Minutes", "Breaks", "Break Minutes", "Gross Minutes", "Net Minutes",
			"Overtime Minutes", "Overtime Hours",
		},
	}
	for _, r := range data.Employees {
		department := ""
		if r.Department != nil {
			department = *r.Department
		}
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.EmployeeCode, r.EmployeeName, department, r.PresentDays, r.LateDays, r.AbsentDays,
			r.TotalLateMinutes, r.TotalBreaks, r.TotalBreakMinutes, r.GrossMinutes, r.NetMinutes,
			r.OvertimeMinutes, r.OvertimeHours,
		})
	}
	sheet.Rows = append(sheet.Rows, []interface{}{
		"TOTAL", fmt.Sprintf("%d employees", data.Totals.Employees), "",
		data.Totals.PresentDays, data.Totals.LateDays, data.Totals.AbsentDays, data.Totals.TotalLateMinutes,
		"", "", "", data.Totals.NetMinutes, data.Totals.OvertimeMinutes, data.Totals.OvertimeHours,
	})

	return export("attendance-summary", req, sheet)
}

// ExportOvertimeReport renders OvertimeReport as an .xlsx workbook
func (s *ReportServiceImpl) ExportOvertimeReport(ctx context.Context, req report.PeriodRequest) (report.ExportFile, error) {
	data, err := s.OvertimeReport(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	sheet := spreadsheet.Sheet{
		Name:    "Overtime",
		Headers: []string{"Employee Code", "Employee Name", "Overtime Days", "Overtime Minutes", "Overtime Hours", "Avg Hours / Day"},
	}
	for _, r := range data.Employees {
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.EmployeeCode, r.EmployeeName, r.OvertimeDays, r.OvertimeMinutes, r.OvertimeHours, r.AveragePerDay,
		})
	}
	sheet.Rows = append(sheet.Rows, []interface{}{
		"TOTAL", "", data.Summary.TotalOvertimeDays, data.Summary.TotalOvertimeMinutes,
		data.Summary.TotalOvertimeHours, data.Summary.AveragePerDay,
	})

	return export("overtime-report", req, sheet)
}

func export(prefix string, req report.PeriodRequest, sheet spreadsheet.Sheet) (report.ExportFile, error) {
	content, err := spreadsheet.Build(sheet)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}

	return report.ExportFile{
		FileName:    fmt.Sprintf("%s_%s_%s.xlsx", prefix, req.StartDate, req.EndDate),
		ContentType: spreadsheet.ContentType,
		Content:     content,
	}, nil
}

// averageHours is hours per day rounded to 2 places, "0.00" when there are no days
func averageHours(minutes, days int) string {
	if days == 0 {
		return decimal.Zero.StringFixed(2)
	}
	return shift.OvertimeHours(minutes).Div(decimal.NewFromInt(int64(days))).StringFixed(2)
}
