package repository

import (
	"context"
	"time"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// Attendance defines the interface for attendance persistence. Dates are
// compared at calendar-day granularity; implementations store the work date
// as a plain date column.
type Attendance interface {
	// GetDayRecord returns the non-draft row for the given day, or nil.
	GetDayRecord(ctx context.Context, workspaceID string, day time.Time) (*domain.Attendance, error)
	// GetDraft returns the draft row for the given day, or nil.
	GetDraft(ctx context.Context, workspaceID string, day time.Time) (*domain.Attendance, error)
	// GetLastCheckInDate returns the work date of the most recent confirmed
	// check-in strictly before the given day, or nil when none exists.
	GetLastCheckInDate(ctx context.Context, workspaceID string, before time.Time) (*time.Time, error)

	// UpsertDraft inserts or replaces the day's draft. When a draft row
	// already exists its ID wins and is written back into att.ID.
	UpsertDraft(ctx context.Context, att *domain.Attendance) error
	DeleteDraft(ctx context.Context, workspaceID string, day time.Time) error
	InsertAttendance(ctx context.Context, att *domain.Attendance) error

	ListAttendance(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.Attendance, error)

	// DeleteStaleDrafts removes draft rows dated strictly before the given
	// day, across all workspaces. Returns the number of rows removed.
	DeleteStaleDrafts(ctx context.Context, before time.Time) (int64, error)
}
