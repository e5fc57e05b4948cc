package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/attendance"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/auth"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/user"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance domain errors
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in today", nil)
	case errors.Is(err, attendance.ErrNotOnBreak):
		BadRequest(w, "No break in progress", nil)
	case errors.Is(err, attendance.ErrNoAttendanceToday):
		BadRequest(w, "No attendance record for today", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagementAccessRequired):
		Forbidden(w, "Management access required")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
