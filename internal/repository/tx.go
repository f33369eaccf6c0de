package repository

import (
	"context"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// Tx defines the interface for transactional operations. Every XP-mutating
// flow reads and writes through one Tx so the user row, workspace row and
// the triggering entity change commit or roll back together.
type Tx interface {
	// Row-locked reads. Both take FOR UPDATE locks so concurrent deltas
	// against the same rows serialize instead of losing updates.
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)
	GetWorkspaceForUpdate(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	UpdateUserTotalXP(ctx context.Context, userID string, totalXP int64) error
	UpdateWorkspaceProgress(ctx context.Context, workspaceID string, level, currentXP int) error
	UpdateWorkspaceStreak(ctx context.Context, workspaceID string, streak int) error

	// Entity writes that ride along with an XP delta.
	InsertAttendance(ctx context.Context, att *domain.Attendance) error
	DeleteAttendance(ctx context.Context, attendanceID string) error
	SetContentDone(ctx context.Context, contentID string, done bool) error
	DeleteContent(ctx context.Context, contentID string) error
	SetTaskDone(ctx context.Context, taskID string, done bool) error
	DeleteTask(ctx context.Context, taskID string) error
	SetChapterLocks(ctx context.Context, chapterID string, locked, forcedUnlocked bool) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
