package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// executor is the subset of pgxpool.Pool and pgx.Tx used by shared write
// helpers.
type executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AttendanceRepository implements the attendance repository for PostgreSQL
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = `attendance_id, workspace_id, work_date, start_time, end_time, note, created_at`

// GetDayRecord returns the non-draft row for the given day, or nil.
func (r *AttendanceRepository) GetDayRecord(ctx context.Context, workspaceID string, day time.Time) (*domain.Attendance, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE workspace_id = $1 AND work_date = $2 AND note <> $3
	`
	return scanAttendance(r.db.QueryRow(ctx, query, id, day, domain.AttendanceNoteDraft))
}

// GetDraft returns the draft row for the given day, or nil.
func (r *AttendanceRepository) GetDraft(ctx context.Context, workspaceID string, day time.Time) (*domain.Attendance, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE workspace_id = $1 AND work_date = $2 AND note = $3
	`
	return scanAttendance(r.db.QueryRow(ctx, query, id, day, domain.AttendanceNoteDraft))
}

// GetLastCheckInDate returns the most recent confirmed check-in date strictly
// before the given day, or nil when none exists.
func (r *AttendanceRepository) GetLastCheckInDate(ctx context.Context, workspaceID string, before time.Time) (*time.Time, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT MAX(work_date)
		FROM attendances
		WHERE workspace_id = $1 AND note = $2 AND work_date < $3
	`
	var last *time.Time
	err = r.db.QueryRow(ctx, query, id, domain.AttendanceNoteCheckedIn, before).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to query last check-in date: %w", err)
	}
	return last, nil
}

// UpsertDraft inserts or replaces the day's draft row. When a draft already
// exists its attendance_id is kept and written back into att.ID.
func (r *AttendanceRepository) UpsertDraft(ctx context.Context, att *domain.Attendance) error {
	id, err := parseUUID("attendance", att.ID)
	if err != nil {
		return err
	}
	workspaceID, err := parseUUID("workspace", att.WorkspaceID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO attendances (attendance_id, workspace_id, work_date, start_time, end_time, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (workspace_id, work_date) WHERE note = 'DRAFT'
		DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time
		RETURNING attendance_id
	`
	err = r.db.QueryRow(ctx, query, id, workspaceID, att.WorkDate, att.StartTime, att.EndTime, domain.AttendanceNoteDraft).Scan(&att.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}
	return nil
}

// DeleteDraft removes the day's draft row if present.
func (r *AttendanceRepository) DeleteDraft(ctx context.Context, workspaceID string, day time.Time) error {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return err
	}

	query := `DELETE FROM attendances WHERE workspace_id = $1 AND work_date = $2 AND note = $3`
	_, err = r.db.Exec(ctx, query, id, day, domain.AttendanceNoteDraft)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// InsertAttendance inserts a confirmed check-in or absence row.
func (r *AttendanceRepository) InsertAttendance(ctx context.Context, att *domain.Attendance) error {
	if err := insertAttendance(ctx, r.db, att); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return domain.ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

// ListAttendance returns attendance rows for the workspace within [from, to],
// drafts excluded, oldest first.
func (r *AttendanceRepository) ListAttendance(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.Attendance, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE workspace_id = $1 AND note <> $2 AND work_date BETWEEN $3 AND $4
		ORDER BY work_date ASC
	`
	rows, err := r.db.Query(ctx, query, id, domain.AttendanceNoteDraft, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []domain.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *att)
	}
	return records, rows.Err()
}

// DeleteStaleDrafts removes draft rows dated before the given day.
func (r *AttendanceRepository) DeleteStaleDrafts(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM attendances WHERE note = $1 AND work_date < $2`
	tag, err := r.db.Exec(ctx, query, domain.AttendanceNoteDraft, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale drafts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func insertAttendance(ctx context.Context, ex executor, att *domain.Attendance) error {
	id, err := parseUUID("attendance", att.ID)
	if err != nil {
		return err
	}
	workspaceID, err := parseUUID("workspace", att.WorkspaceID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO attendances (attendance_id, workspace_id, work_date, start_time, end_time, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err = ex.Exec(ctx, query, id, workspaceID, att.WorkDate, att.StartTime, att.EndTime, att.Note)
	if err != nil {
		return fmt.Errorf("failed to insert attendance: %w", err)
	}
	return nil
}

func scanAttendance(row pgx.Row) (*domain.Attendance, error) {
	var att domain.Attendance
	err := row.Scan(&att.ID, &att.WorkspaceID, &att.WorkDate, &att.StartTime,
		&att.EndTime, &att.Note, &att.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan attendance: %w", err)
	}
	return &att, nil
}
