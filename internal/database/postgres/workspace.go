package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/repository"
)

// WorkspaceRepository implements the workspace repository for PostgreSQL
type WorkspaceRepository struct {
	db *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

const workspaceColumns = `workspace_id, user_id, name, difficulty, level, current_xp, streak, min_study_hours, created_at, updated_at`

// CreateWorkspace inserts a new workspace row.
func (r *WorkspaceRepository) CreateWorkspace(ctx context.Context, ws *domain.Workspace) error {
	id, err := parseUUID("workspace", ws.ID)
	if err != nil {
		return err
	}
	userID, err := parseUUID("user", ws.UserID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO workspaces (workspace_id, user_id, name, difficulty, level, current_xp, streak, min_study_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, id, userID, ws.Name, ws.Difficulty, ws.Level, ws.CurrentXP, ws.Streak, ws.MinStudyHours)
	if err != nil {
		return fmt.Errorf("failed to insert workspace: %w", err)
	}
	return nil
}

// GetWorkspace fetches a workspace by ID, returning nil when not found.
func (r *WorkspaceRepository) GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE workspace_id = $1`
	return scanWorkspace(r.db.QueryRow(ctx, query, id))
}

// ListWorkspacesByUser returns all workspaces owned by the user, newest first.
func (r *WorkspaceRepository) ListWorkspacesByUser(ctx context.Context, userID string) ([]domain.Workspace, error) {
	id, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, *ws)
	}
	return workspaces, rows.Err()
}

// DeleteWorkspace removes a workspace; children cascade.
func (r *WorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM workspaces WHERE workspace_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkspaceNotFound
	}
	return nil
}

// BeginTx opens the transaction used by the XP applier.
func (r *WorkspaceRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &txRepo{tx: tx}, nil
}

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var ws domain.Workspace
	err := row.Scan(&ws.ID, &ws.UserID, &ws.Name, &ws.Difficulty, &ws.Level,
		&ws.CurrentXP, &ws.Streak, &ws.MinStudyHours, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan workspace: %w", err)
	}
	return &ws, nil
}
