package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nightshift-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/auth"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/employee"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/report"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/user"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDisabled), errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this shift")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for this shift")
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		BadRequest(w, "No active check in found for this shift", nil)
	case errors.Is(err, attendance.ErrInvalidBreakType), errors.Is(err, attendance.ErrInvalidBreakDuration):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeEntry):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEmployeeIDRequired):
		Forbidden(w, "Account is not linked to an employee")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange), errors.Is(err, report.ErrDateRangeTooLarge):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
