package repository

import (
	"context"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// Task defines the interface for task persistence
type Task interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, workspaceID string) ([]domain.Task, error)
}
