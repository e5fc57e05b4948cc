package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/attendance"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/database"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/timeutil"
)

const uniqueViolation = "23505"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository. A violation of the
// (user_id, date) uniqueness constraint is reported as ErrAlreadyCheckedIn,
// the backstop against two concurrent check-ins for the same day.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (user_id, date, check_in, status, total_break_time, total_work_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.UserID,
		att.Date,
		att.CheckIn,
		att.Status,
		att.TotalBreakTime,
		att.TotalWorkTime,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByUserAndDay implements attendance.AttendanceRepository. Inside a
// transaction the row is locked so concurrent operations on the same
// (user, day) serialize.
func (r *attendanceRepository) GetByUserAndDay(ctx context.Context, userID string, day timeutil.Day) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, check_in, check_out, status,
			   total_break_time, total_work_time, created_at, updated_at
		FROM attendances
		WHERE user_id = $1 AND date = $2
		LIMIT 1
	`
	if inTransaction(ctx) {
		query += " FOR UPDATE"
	}

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, userID, day.Start).Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &att.Status,
		&att.TotalBreakTime, &att.TotalWorkTime, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No attendance for this day
		}
		return nil, fmt.Errorf("failed to get attendance by user and day: %w", err)
	}

	breaks, err := r.loadBreaks(ctx, []string{att.ID})
	if err != nil {
		return nil, err
	}
	att.Breaks = breaks[att.ID]

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, status = $3,
			total_break_time = $4, total_work_time = $5, updated_at = $6
		WHERE id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.CheckIn, att.CheckOut, att.Status,
		att.TotalBreakTime, att.TotalWorkTime, time.Now(),
		att.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// CreateBreak implements attendance.AttendanceRepository.
func (r *attendanceRepository) CreateBreak(ctx context.Context, brk attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO breaks (attendance_id, start_time)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, brk.AttendanceID, brk.StartTime).Scan(&brk.ID, &brk.CreatedAt)
	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to create break: %w", err)
	}

	return brk, nil
}

// UpdateBreak implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateBreak(ctx context.Context, brk attendance.Break) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE breaks
		SET end_time = $1, duration = $2
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, brk.EndTime, brk.Duration, brk.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update break: %w", err)
	}

	return nil
}

// ListForDay implements attendance.AttendanceRepository. One bulk fetch for
// all users plus one for the breaks; never a query per user.
func (r *attendanceRepository) ListForDay(ctx context.Context, day timeutil.Day) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.status,
			   a.total_break_time, a.total_work_time, a.created_at, a.updated_at,
			   u.name AS user_name, u.email AS user_email,
			   u.position AS user_position, u.department AS user_department
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
		ORDER BY a.check_in
	`

	rows, err := q.Query(ctx, query, day.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to query today's attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := scanAttendanceRows(rows)
	if err != nil {
		return nil, err
	}

	return r.attachBreaks(ctx, attendances)
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.user_id = $1"
	args := []interface{}{userID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 30
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.status,
			   a.total_break_time, a.total_work_time, a.created_at, a.updated_at,
			   NULL, NULL, NULL, NULL
		FROM attendances a
		WHERE %s
		ORDER BY a.date DESC
		LIMIT $%d
	`, baseWhere, argIdx)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := scanAttendanceRows(rows)
	if err != nil {
		return nil, err
	}

	return r.attachBreaks(ctx, attendances)
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		baseWhere += fmt.Sprintf(" AND u.department = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if len(filter.UserIDs) > 0 {
		baseWhere += fmt.Sprintf(" AND a.user_id = ANY($%d::uuid[])", argIdx)
		args = append(args, filter.UserIDs)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	selectQuery := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.status,
			   a.total_break_time, a.total_work_time, a.created_at, a.updated_at,
			   u.name AS user_name, u.email AS user_email,
			   u.position AS user_position, u.department AS user_department
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := scanAttendanceRows(rows)
	if err != nil {
		return nil, 0, err
	}

	attendances, err = r.attachBreaks(ctx, attendances)
	if err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

func scanAttendanceRows(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &att.Status,
			&att.TotalBreakTime, &att.TotalWorkTime, &att.CreatedAt, &att.UpdatedAt,
			&att.UserName, &att.UserEmail, &att.UserPosition, &att.UserDepartment,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}
	return attendances, nil
}

// loadBreaks fetches the breaks for a set of attendance ids in creation
// order, keyed by owning attendance id.
func (r *attendanceRepository) loadBreaks(ctx context.Context, attendanceIDs []string) (map[string][]attendance.Break, error) {
	result := make(map[string][]attendance.Break, len(attendanceIDs))
	if len(attendanceIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, start_time, end_time, duration, created_at
		FROM breaks
		WHERE attendance_id = ANY($1::uuid[])
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, attendanceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var brk attendance.Break
		if err := rows.Scan(&brk.ID, &brk.AttendanceID, &brk.StartTime, &brk.EndTime, &brk.Duration, &brk.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		result[brk.AttendanceID] = append(result[brk.AttendanceID], brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read break rows: %w", err)
	}

	return result, nil
}

func (r *attendanceRepository) attachBreaks(ctx context.Context, attendances []attendance.Attendance) ([]attendance.Attendance, error) {
	ids := make([]string, 0, len(attendances))
	for _, att := range attendances {
		ids = append(ids, att.ID)
	}

	breaks, err := r.loadBreaks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range attendances {
		attendances[i].Breaks = breaks[attendances[i].ID]
	}
	return attendances, nil
}
