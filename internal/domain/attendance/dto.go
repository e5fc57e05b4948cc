package attendance

import (
	"time"

	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// FILTERS
// ========================================

type MyAttendanceFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Limit     int     `json:"limit"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 || f.Limit > 30 {
		f.Limit = 30 // History pages are capped at 30 days
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	Date         *string `json:"date,omitempty"` // YYYY-MM-DD, single day bucket
	UserID       *string `json:"user_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`

	// UserIDs restricts results to a visible population (e.g. a manager's
	// reports). Empty means unrestricted.
	UserIDs []string `json:"-"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type BreakResponse struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  *int       `json:"duration,omitempty"`
}

type AttendanceResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	UserName       *string         `json:"user_name,omitempty"`
	UserPosition   *string         `json:"user_position,omitempty"`
	UserDepartment *string         `json:"user_department,omitempty"`
	Date           string          `json:"date"`
	CheckIn        *time.Time      `json:"check_in,omitempty"`
	CheckOut       *time.Time      `json:"check_out,omitempty"`
	Status         string          `json:"status"`
	TotalBreakTime int             `json:"total_break_time"`
	TotalWorkTime  int             `json:"total_work_time"`
	Breaks         []BreakResponse `json:"breaks"`
}

type CheckInResponse struct {
	Attendance  AttendanceResponse `json:"attendance"`
	CheckInTime time.Time          `json:"check_in_time"`
}

type CheckOutResponse struct {
	Attendance     AttendanceResponse `json:"attendance"`
	CheckOutTime   time.Time          `json:"check_out_time"`
	TotalWorkTime  int                `json:"total_work_time"`
	TotalBreakTime int                `json:"total_break_time"`
}

type BreakStartResponse struct {
	Break     BreakResponse `json:"break"`
	StartTime time.Time     `json:"start_time"`
}

type BreakEndResponse struct {
	Break          BreakResponse `json:"break"`
	Duration       int           `json:"duration"`
	TotalBreakTime int           `json:"total_break_time"`
}

type TodayResponse struct {
	Attendance   *AttendanceResponse `json:"attendance"`
	IsCheckedIn  bool                `json:"is_checked_in"`
	IsCheckedOut bool                `json:"is_checked_out"`
	IsOnBreak    bool                `json:"is_on_break"`
	CurrentBreak *BreakResponse      `json:"current_break"`
}

// LiveStatusEntry is one user's record tagged with its bucket status.
type LiveStatusEntry struct {
	AttendanceResponse
	LiveStatus string `json:"live_status"` // working, on-break, checked-out
}

type LiveStatusSummary struct {
	Working    int `json:"working"`
	OnBreak    int `json:"on_break"`
	CheckedOut int `json:"checked_out"`
}

type LiveStatusResponse struct {
	Working      []LiveStatusEntry `json:"working"`
	OnBreak      []LiveStatusEntry `json:"on_break"`
	CheckedOut   []LiveStatusEntry `json:"checked_out"`
	TotalPresent int               `json:"total_present"`
	Summary      LiveStatusSummary `json:"summary"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	Pagination  Pagination           `json:"pagination"`
}
