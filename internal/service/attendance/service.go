package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/attendance"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/user"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/timeutil"
)

type AttendanceServiceImpl struct {
	txr attendance.Transactor
	attendance.AttendanceRepository
	user.UserRepository
	loc *time.Location
	now func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

func NewAttendanceService(
	txr attendance.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	loc *time.Location,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		txr:                  txr,
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		loc:                  loc,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// callerFromContext extracts the verified caller identity from the JWT claims.
func callerFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", "", fmt.Errorf("role claim is missing or invalid")
	}

	return userID, user.Role(roleStr), nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.CheckInResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	now := s.now().UTC()
	today := timeutil.DayOf(now, s.loc)

	var record attendance.Attendance
	err = s.txr.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.AttendanceRepository.GetByUserAndDay(txCtx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if existing != nil && existing.IsCheckedIn() {
			return attendance.ErrAlreadyCheckedIn
		}

		if existing != nil {
			// A record without checkIn should not occur since records are
			// only created here, but repair it rather than fail.
			existing.CheckIn = &now
			existing.Status = attendance.StatusPresent
			if err := s.AttendanceRepository.Update(txCtx, *existing); err != nil {
				return fmt.Errorf("failed to update attendance record: %w", err)
			}
			record = *existing
			return nil
		}

		created, err := s.AttendanceRepository.Create(txCtx, attendance.Attendance{
			UserID:  userID,
			Date:    today.Start,
			CheckIn: &now,
			Status:  attendance.StatusPresent,
		})
		if err != nil {
			// The (user, day) uniqueness constraint is the backstop for two
			// concurrent check-ins; the repository reports a violation as
			// ErrAlreadyCheckedIn.
			return err
		}
		record = created
		return nil
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.CheckInResponse{
		Attendance:  mapAttendanceToResponse(record),
		CheckInTime: now,
	}, nil
}

// CheckOut implements attendance.AttendanceService. Any active break is
// closed first, then totals are finalized: each break span and the overall
// elapsed span are rounded to minutes independently, so totalWorkTime can
// drift ±1 minute from the raw spans.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.CheckOutResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	now := s.now().UTC()
	today := timeutil.DayOf(now, s.loc)

	var record attendance.Attendance
	err = s.txr.WithinTransaction(ctx, func(txCtx context.Context) error {
		att, err := s.AttendanceRepository.GetByUserAndDay(txCtx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if att == nil || !att.IsCheckedIn() {
			return attendance.ErrNotCheckedIn
		}
		if att.IsCheckedOut() {
			return attendance.ErrAlreadyCheckedOut
		}

		if active := att.ActiveBreak(); active != nil {
			duration := timeutil.RoundMinutes(now.Sub(active.StartTime))
			active.EndTime = &now
			active.Duration = &duration
			if err := s.AttendanceRepository.UpdateBreak(txCtx, *active); err != nil {
				return fmt.Errorf("failed to close active break: %w", err)
			}
		}

		elapsed := timeutil.RoundMinutes(now.Sub(*att.CheckIn))
		att.TotalBreakTime = att.SumBreakMinutes()
		att.TotalWorkTime = elapsed - att.TotalBreakTime
		att.CheckOut = &now

		if err := s.AttendanceRepository.Update(txCtx, *att); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		record = *att
		return nil
	})
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	return attendance.CheckOutResponse{
		Attendance:     mapAttendanceToResponse(record),
		CheckOutTime:   now,
		TotalWorkTime:  record.TotalWorkTime,
		TotalBreakTime: record.TotalBreakTime,
	}, nil
}

// BreakStart implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BreakStart(ctx context.Context) (attendance.BreakStartResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return attendance.BreakStartResponse{}, err
	}

	now := s.now().UTC()
	today := timeutil.DayOf(now, s.loc)

	var created attendance.Break
	err = s.txr.WithinTransaction(ctx, func(txCtx context.Context) error {
		att, err := s.AttendanceRepository.GetByUserAndDay(txCtx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if att == nil || !att.IsCheckedIn() {
			return attendance.ErrNotCheckedIn
		}
		if att.IsCheckedOut() {
			return attendance.ErrAlreadyCheckedOut
		}
		if att.ActiveBreak() != nil {
			return attendance.ErrAlreadyOnBreak
		}

		created, err = s.AttendanceRepository.CreateBreak(txCtx, attendance.Break{
			AttendanceID: att.ID,
			StartTime:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to create break record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.BreakStartResponse{}, err
	}

	return attendance.BreakStartResponse{
		Break:     mapBreakToResponse(created),
		StartTime: now,
	}, nil
}

// BreakEnd implements attendance.AttendanceService. It refreshes
// totalBreakTime but leaves totalWorkTime untouched; work time is only
// finalized at check-out.
func (s *AttendanceServiceImpl) BreakEnd(ctx context.Context) (attendance.BreakEndResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return attendance.BreakEndResponse{}, err
	}

	now := s.now().UTC()
	today := timeutil.DayOf(now, s.loc)

	var closed attendance.Break
	var totalBreakTime int
	err = s.txr.WithinTransaction(ctx, func(txCtx context.Context) error {
		att, err := s.AttendanceRepository.GetByUserAndDay(txCtx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if att == nil {
			return attendance.ErrNoAttendanceToday
		}

		active := att.ActiveBreak()
		if active == nil {
			return attendance.ErrNotOnBreak
		}

		duration := timeutil.RoundMinutes(now.Sub(active.StartTime))
		active.EndTime = &now
		active.Duration = &duration
		if err := s.AttendanceRepository.UpdateBreak(txCtx, *active); err != nil {
			return fmt.Errorf("failed to close break record: %w", err)
		}

		att.TotalBreakTime = att.SumBreakMinutes()
		if err := s.AttendanceRepository.Update(txCtx, *att); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		closed = *active
		totalBreakTime = att.TotalBreakTime
		return nil
	})
	if err != nil {
		return attendance.BreakEndResponse{}, err
	}

	return attendance.BreakEndResponse{
		Break:          mapBreakToResponse(closed),
		Duration:       *closed.Duration,
		TotalBreakTime: totalBreakTime,
	}, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	today := timeutil.DayOf(s.now().UTC(), s.loc)

	att, err := s.AttendanceRepository.GetByUserAndDay(ctx, userID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if att == nil {
		return attendance.TodayResponse{}, nil
	}

	resp := mapAttendanceToResponse(*att)
	result := attendance.TodayResponse{
		Attendance:   &resp,
		IsCheckedIn:  att.IsCheckedIn(),
		IsCheckedOut: att.IsCheckedOut(),
	}
	if active := att.ActiveBreak(); active != nil {
		result.IsOnBreak = true
		brk := mapBreakToResponse(*active)
		result.CurrentBreak = &brk
	}
	return result, nil
}

// GetLiveStatus implements attendance.AttendanceService. Bucket precedence
// is checked-out, then on-break, then working; a record that has a checkOut
// is checked-out even if a break was (inconsistently) left open. Records
// with neither checkIn nor breaks land in no bucket but still count toward
// totalPresent.
func (s *AttendanceServiceImpl) GetLiveStatus(ctx context.Context) (attendance.LiveStatusResponse, error) {
	if _, _, err := callerFromContext(ctx); err != nil {
		return attendance.LiveStatusResponse{}, err
	}

	today := timeutil.DayOf(s.now().UTC(), s.loc)

	records, err := s.AttendanceRepository.ListForDay(ctx, today)
	if err != nil {
		return attendance.LiveStatusResponse{}, fmt.Errorf("failed to list today's attendance: %w", err)
	}

	result := attendance.LiveStatusResponse{
		Working:      []attendance.LiveStatusEntry{},
		OnBreak:      []attendance.LiveStatusEntry{},
		CheckedOut:   []attendance.LiveStatusEntry{},
		TotalPresent: len(records),
	}

	for _, att := range records {
		entry := attendance.LiveStatusEntry{AttendanceResponse: mapAttendanceToResponse(att)}
		switch {
		case att.IsCheckedOut():
			entry.LiveStatus = "checked-out"
			result.CheckedOut = append(result.CheckedOut, entry)
		case att.ActiveBreak() != nil:
			entry.LiveStatus = "on-break"
			result.OnBreak = append(result.OnBreak, entry)
		case att.IsCheckedIn():
			entry.LiveStatus = "working"
			result.Working = append(result.Working, entry)
		}
	}

	result.Summary = attendance.LiveStatusSummary{
		Working:    len(result.Working),
		OnBreak:    len(result.OnBreak),
		CheckedOut: len(result.CheckedOut),
	}
	return result, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get my attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}
	return responses, nil
}

// ListAttendance implements attendance.AttendanceService. Managers only see
// the employee population; admin and hr see everyone.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	_, role, err := callerFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if role == user.RoleManager {
		ids, err := s.UserRepository.ListIDsByRole(ctx, user.RoleEmployee)
		if err != nil {
			return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to resolve manager's visible population: %w", err)
		}
		filter.UserIDs = ids
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	return attendance.ListAttendanceResponse{
		Attendances: responses,
		Pagination: attendance.Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	breaks := make([]attendance.BreakResponse, 0, len(att.Breaks))
	for _, brk := range att.Breaks {
		breaks = append(breaks, mapBreakToResponse(brk))
	}

	return attendance.AttendanceResponse{
		ID:             att.ID,
		UserID:         att.UserID,
		UserName:       att.UserName,
		UserPosition:   att.UserPosition,
		UserDepartment: att.UserDepartment,
		Date:           att.Date.Format("2006-01-02"),
		CheckIn:        att.CheckIn,
		CheckOut:       att.CheckOut,
		Status:         att.Status,
		TotalBreakTime: att.TotalBreakTime,
		TotalWorkTime:  att.TotalWorkTime,
		Breaks:         breaks,
	}
}

func mapBreakToResponse(brk attendance.Break) attendance.BreakResponse {
	return attendance.BreakResponse{
		ID:        brk.ID,
		StartTime: brk.StartTime,
		EndTime:   brk.EndTime,
		Duration:  brk.Duration,
	}
}
