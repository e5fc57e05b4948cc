package attendance

import "errors"

// Attendance domain errors
var (
	// State machine preconditions
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("not checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrAlreadyOnBreak    = errors.New("already on break")
	ErrNotOnBreak        = errors.New("not on break")
	ErrNoAttendanceToday = errors.New("no attendance record for today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
