package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// txRepo implements repository.Tx over a single pgx transaction. All reads
// here take FOR UPDATE locks; the XP applier serializes concurrent deltas
// against the same user and workspace rows through them.
type txRepo struct {
	tx pgx.Tx
}

func (t *txRepo) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, username, total_xp, created_at, updated_at
		FROM users
		WHERE user_id = $1
		FOR UPDATE
	`
	return scanUser(t.tx.QueryRow(ctx, query, id))
}

func (t *txRepo) GetWorkspaceForUpdate(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE workspace_id = $1 FOR UPDATE`
	return scanWorkspace(t.tx.QueryRow(ctx, query, id))
}

func (t *txRepo) UpdateUserTotalXP(ctx context.Context, userID string, totalXP int64) error {
	id, err := parseUUID("user", userID)
	if err != nil {
		return err
	}

	query := `UPDATE users SET total_xp = $1, updated_at = NOW() WHERE user_id = $2`
	tag, err := t.tx.Exec(ctx, query, totalXP, id)
	if err != nil {
		return fmt.Errorf("failed to update user total xp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (t *txRepo) UpdateWorkspaceProgress(ctx context.Context, workspaceID string, level, currentXP int) error {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return err
	}

	query := `UPDATE workspaces SET level = $1, current_xp = $2, updated_at = NOW() WHERE workspace_id = $3`
	tag, err := t.tx.Exec(ctx, query, level, currentXP, id)
	if err != nil {
		return fmt.Errorf("failed to update workspace progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkspaceNotFound
	}
	return nil
}

func (t *txRepo) UpdateWorkspaceStreak(ctx context.Context, workspaceID string, streak int) error {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return err
	}

	query := `UPDATE workspaces SET streak = $1, updated_at = NOW() WHERE workspace_id = $2`
	tag, err := t.tx.Exec(ctx, query, streak, id)
	if err != nil {
		return fmt.Errorf("failed to update workspace streak: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkspaceNotFound
	}
	return nil
}

func (t *txRepo) InsertAttendance(ctx context.Context, att *domain.Attendance) error {
	if err := insertAttendance(ctx, t.tx, att); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return domain.ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

func (t *txRepo) DeleteAttendance(ctx context.Context, attendanceID string) error {
	id, err := parseUUID("attendance", attendanceID)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, `DELETE FROM attendances WHERE attendance_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

func (t *txRepo) SetContentDone(ctx context.Context, contentID string, done bool) error {
	id, err := parseUUID("content", contentID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `UPDATE contents SET is_done = $1 WHERE content_id = $2`, done, id)
	if err != nil {
		return fmt.Errorf("failed to set content done: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

func (t *txRepo) DeleteContent(ctx context.Context, contentID string) error {
	id, err := parseUUID("content", contentID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `DELETE FROM contents WHERE content_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

func (t *txRepo) SetTaskDone(ctx context.Context, taskID string, done bool) error {
	id, err := parseUUID("task", taskID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `UPDATE tasks SET is_done = $1 WHERE task_id = $2`, done, id)
	if err != nil {
		return fmt.Errorf("failed to set task done: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (t *txRepo) DeleteTask(ctx context.Context, taskID string) error {
	id, err := parseUUID("task", taskID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (t *txRepo) SetChapterLocks(ctx context.Context, chapterID string, locked, forcedUnlocked bool) error {
	return setChapterLocks(ctx, t.tx, chapterID, locked, forcedUnlocked)
}

func (t *txRepo) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *txRepo) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
