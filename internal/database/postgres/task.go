package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// TaskRepository implements the task repository for PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `task_id, workspace_id, title, difficulty, xp_reward, is_done, created_at`

// CreateTask inserts a new task row.
func (r *TaskRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	id, err := parseUUID("task", task.ID)
	if err != nil {
		return err
	}
	workspaceID, err := parseUUID("workspace", task.WorkspaceID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (task_id, workspace_id, title, difficulty, xp_reward, is_done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err = r.db.Exec(ctx, query, id, workspaceID, task.Title, task.Difficulty, task.XPReward, task.IsDone)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// GetTask fetches a task by ID, returning nil when not found.
func (r *TaskRepository) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	id, err := parseUUID("task", taskID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`
	return scanTask(r.db.QueryRow(ctx, query, id))
}

// ListTasks returns the workspace's tasks, newest first.
func (r *TaskRepository) ListTasks(ctx context.Context, workspaceID string) ([]domain.Task, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE workspace_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(&task.ID, &task.WorkspaceID, &task.Title, &task.Difficulty,
		&task.XPReward, &task.IsDone, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return &task, nil
}
