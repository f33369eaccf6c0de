package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/metrics"
	"github.com/dawnfield/StudyQuest_Go/internal/repository"
	"github.com/dawnfield/StudyQuest_Go/internal/xp"
)

// Service defines the interface for personal task operations
type Service interface {
	CreateTask(ctx context.Context, userID, workspaceID, title string, difficulty domain.Difficulty) (*domain.Task, error)
	ListTasks(ctx context.Context, userID, workspaceID string) ([]domain.Task, error)
	ToggleTask(ctx context.Context, userID, taskID string) (*domain.Task, *domain.XPResult, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

type service struct {
	workspaces repository.Workspace
	repo       repository.Task
	xpSvc      xp.Service
}

// NewService creates a new task service
func NewService(workspaces repository.Workspace, repo repository.Task, xpSvc xp.Service) Service {
	return &service{workspaces: workspaces, repo: repo, xpSvc: xpSvc}
}

// CreateTask adds a task. The XP reward is frozen from the difficulty at
// creation so a later toggle-off always reverses exactly what was granted.
func (s *service) CreateTask(ctx context.Context, userID, workspaceID, title string, difficulty domain.Difficulty) (*domain.Task, error) {
	if _, err := s.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", domain.ErrInvalidInput)
	}
	if !difficulty.Valid() {
		return nil, domain.ErrInvalidDifficulty
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Title:       title,
		Difficulty:  difficulty,
		XPReward:    domain.TaskXPReward(difficulty),
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks returns the workspace's tasks.
func (s *service) ListTasks(ctx context.Context, userID, workspaceID string) ([]domain.Task, error) {
	if _, err := s.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasks(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ToggleTask flips a task's completion state, applying the frozen reward as
// a gain or loss together with the isDone flip.
func (s *service) ToggleTask(ctx context.Context, userID, taskID string) (*domain.Task, *domain.XPResult, error) {
	task, ws, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, nil, err
	}

	delta := task.XPReward
	direction := domain.ToggleGain
	if task.IsDone {
		delta = -task.XPReward
		direction = domain.ToggleLoss
	}
	markingDone := !task.IsDone

	result, err := s.xpSvc.ApplyDelta(ctx, userID, ws.ID, delta, func(ctx context.Context, tx repository.Tx) error {
		return tx.SetTaskDone(ctx, taskID, markingDone)
	})
	if err != nil {
		return nil, nil, err
	}
	task.IsDone = markingDone

	metrics.TaskToggles.WithLabelValues(direction).Inc()
	logger.FromContext(ctx).Info("Task toggled",
		"task_id", taskID,
		"direction", direction,
		"xp", task.XPReward)

	return task, result, nil
}

// DeleteTask removes a task; a completed task gives back its reward in the
// same transaction.
func (s *service) DeleteTask(ctx context.Context, userID, taskID string) error {
	task, ws, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	delta := 0
	if task.IsDone {
		delta = -task.XPReward
	}

	_, err = s.xpSvc.ApplyDelta(ctx, userID, ws.ID, delta, func(ctx context.Context, tx repository.Tx) error {
		return tx.DeleteTask(ctx, taskID)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Task deleted", "task_id", taskID, "reversed_xp", -delta)
	return nil
}

func (s *service) ownedTask(ctx context.Context, userID, taskID string) (*domain.Task, *domain.Workspace, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, nil, domain.ErrTaskNotFound
	}
	ws, err := s.ownedWorkspace(ctx, userID, task.WorkspaceID)
	if err != nil {
		return nil, nil, err
	}
	return task, ws, nil
}

func (s *service) ownedWorkspace(ctx context.Context, userID, workspaceID string) (*domain.Workspace, error) {
	ws, err := s.workspaces.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if ws == nil {
		return nil, domain.ErrWorkspaceNotFound
	}
	if ws.UserID != userID {
		return nil, domain.ErrNotWorkspaceOwner
	}
	return ws, nil
}
