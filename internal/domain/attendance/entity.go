package attendance

import (
	"time"
)

// StatusPresent is the only status this subsystem writes; absence is
// represented by the record not existing.
const StatusPresent = "present"

// Attendance is the daily record for one user on one business day.
// Date holds the local-midnight day bucket with no time-of-day component.
// TotalWorkTime is only finalized at check-out and stays zero between
// breaks; TotalBreakTime is kept current on every break end.
type Attendance struct {
	ID             string
	UserID         string
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	Status         string
	TotalBreakTime int // minutes
	TotalWorkTime  int // minutes, finalized at check-out
	Breaks         []Break
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / join fields
	UserName       *string
	UserEmail      *string
	UserPosition   *string
	UserDepartment *string
}

// Break is a rest span owned by exactly one Attendance. A nil EndTime means
// the break is currently active; Duration is set once, when the break ends.
type Break struct {
	ID           string
	AttendanceID string
	StartTime    time.Time
	EndTime      *time.Time
	Duration     *int // minutes
	CreatedAt    time.Time
}

// ActiveBreak returns the break currently in progress, or nil. At most one
// break per record may be active; this accessor is the single enforcement
// point for that invariant, so callers must not re-scan Breaks themselves.
func (a *Attendance) ActiveBreak() *Break {
	for i := range a.Breaks {
		if a.Breaks[i].EndTime == nil {
			return &a.Breaks[i]
		}
	}
	return nil
}

// IsCheckedIn reports whether the user has checked in on this record.
func (a *Attendance) IsCheckedIn() bool {
	return a.CheckIn != nil
}

// IsCheckedOut reports whether the day has been closed.
func (a *Attendance) IsCheckedOut() bool {
	return a.CheckOut != nil
}

// SumBreakMinutes totals the recorded duration of all closed breaks.
func (a *Attendance) SumBreakMinutes() int {
	total := 0
	for i := range a.Breaks {
		if a.Breaks[i].Duration != nil {
			total += *a.Breaks[i].Duration
		}
	}
	return total
}
