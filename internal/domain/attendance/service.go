package attendance

import (
	"context"
)

// AttendanceService defines the attendance state machine operations.
// The caller identity is taken from the verified JWT claims on ctx.
type AttendanceService interface {
	// CheckIn opens the caller's attendance record for today
	CheckIn(ctx context.Context) (CheckInResponse, error)

	// CheckOut closes today's record, auto-closing any active break and
	// finalizing totalBreakTime and totalWorkTime
	CheckOut(ctx context.Context) (CheckOutResponse, error)

	// BreakStart opens a break on today's record
	BreakStart(ctx context.Context) (BreakStartResponse, error)

	// BreakEnd closes the active break and refreshes totalBreakTime
	BreakEnd(ctx context.Context) (BreakEndResponse, error)

	// GetToday returns the caller's record for today, if any, with derived flags
	GetToday(ctx context.Context) (TodayResponse, error)

	// GetLiveStatus partitions all of today's records into
	// working/on-break/checked-out (management only)
	GetLiveStatus(ctx context.Context) (LiveStatusResponse, error)

	// GetMyAttendance retrieves the caller's history, most recent day first
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) ([]AttendanceResponse, error)

	// ListAttendance retrieves history across users with filters and
	// pagination (management only; managers see the employee population)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
