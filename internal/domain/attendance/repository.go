package attendance

import (
	"context"

	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/timeutil"
)

// AttendanceRepository defines data access methods for attendance records
// and their owned breaks. Day-scoped lookups use the half-open business-day
// bucket. Implementations must enforce a uniqueness constraint on
// (user, day) as the backstop for concurrent check-ins.
type AttendanceRepository interface {
	// Create inserts a new attendance record. Returns ErrAlreadyCheckedIn
	// when the (user, day) uniqueness constraint is violated.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByUserAndDay retrieves the record for one user on one day, with
	// breaks loaded in creation order, or nil when none exists. Inside a
	// transaction the record row is locked until commit.
	GetByUserAndDay(ctx context.Context, userID string, day timeutil.Day) (*Attendance, error)

	// Update persists checkIn/checkOut/status/total fields of an existing record
	Update(ctx context.Context, att Attendance) error

	// CreateBreak inserts a new break owned by an attendance record
	CreateBreak(ctx context.Context, brk Break) (Break, error)

	// UpdateBreak persists endTime/duration of an existing break
	UpdateBreak(ctx context.Context, brk Break) error

	// ListForDay bulk-fetches all users' records for one day with breaks and
	// user info, for the live-status snapshot. Single query set, not per-user.
	ListForDay(ctx context.Context, day timeutil.Day) ([]Attendance, error)

	// ListByUser retrieves one user's history, most recent day first
	ListByUser(ctx context.Context, userID string, filter MyAttendanceFilter) ([]Attendance, error)

	// List retrieves history across users with filters and pagination,
	// most recent day first
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}

// Transactor runs fn inside a single atomic store transaction. The context
// passed to fn carries the transaction; repository methods called with it
// join it. A non-nil error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
