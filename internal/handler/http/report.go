package http

import (
	"net/http"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/report"
	"github.com/nightshift-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	Overtime(w http.ResponseWriter, r *http.Request)
	ExportAttendanceSummary(w http.ResponseWriter, r *http.Request)
	ExportOvertime(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// periodFromQuery reads start_date, end_date and the optional employee_id
func periodFromQuery(r *http.Request) report.PeriodRequest {
	return report.PeriodRequest{
		EmployeeID: optionalQuery(r, "employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
}

// AttendanceSummary handles GET /reports/attendance-summary
func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.AttendanceSummary(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Overtime handles GET /reports/overtime
func (h *reportHandlerImpl) Overtime(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.OvertimeReport(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportAttendanceSummary handles GET /reports/attendance-summary/export
func (h *reportHandlerImpl) ExportAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportAttendanceSummary(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.FileName, file.ContentType, file.Content)
}

// ExportOvertime handles GET /reports/overtime/export
func (h *reportHandlerImpl) ExportOvertime(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportOvertimeReport(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.FileName, file.ContentType, file.Content)
}
