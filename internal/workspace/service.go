package workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/level"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/repository"
)

// Summary is a workspace together with its level-capacity context, the
// shape the dashboard renders.
type Summary struct {
	Workspace  domain.Workspace `json:"workspace"`
	CapacityXP int              `json:"capacity_xp"`
	Progress   int              `json:"progress"`
}

// Service defines the interface for workspace operations
type Service interface {
	CreateWorkspace(ctx context.Context, userID, name string, difficulty domain.Difficulty, minStudyHours float64) (*domain.Workspace, error)
	GetWorkspace(ctx context.Context, userID, workspaceID string) (*Summary, error)
	ListWorkspaces(ctx context.Context, userID string) ([]Summary, error)
	DeleteWorkspace(ctx context.Context, userID, workspaceID string) error
}

type service struct {
	repo  repository.Workspace
	users repository.User
	cache *Cache
}

// NewService creates a new workspace service. cache may be nil to disable
// read caching.
func NewService(repo repository.Workspace, users repository.User, cache *Cache) Service {
	return &service{repo: repo, users: users, cache: cache}
}

// CreateWorkspace creates a level-1 workspace for the user.
func (s *service) CreateWorkspace(ctx context.Context, userID, name string, difficulty domain.Difficulty, minStudyHours float64) (*domain.Workspace, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if name == "" {
		return nil, fmt.Errorf("%w: workspace name is required", domain.ErrInvalidInput)
	}
	if !difficulty.Valid() {
		return nil, domain.ErrInvalidDifficulty
	}
	if minStudyHours < 0 {
		return nil, fmt.Errorf("%w: min study hours cannot be negative", domain.ErrInvalidInput)
	}

	ws := &domain.Workspace{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          name,
		Difficulty:    difficulty,
		Level:         level.MinWorkspaceLevel,
		CurrentXP:     0,
		Streak:        0,
		MinStudyHours: minStudyHours,
	}
	if err := s.repo.CreateWorkspace(ctx, ws); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	logger.FromContext(ctx).Info("Workspace created",
		"workspace_id", ws.ID,
		"difficulty", difficulty,
		"min_study_hours", minStudyHours)
	return ws, nil
}

// GetWorkspace returns one workspace with capacity context. Reads go
// through the LRU cache when one is configured.
func (s *service) GetWorkspace(ctx context.Context, userID, workspaceID string) (*Summary, error) {
	var ws *domain.Workspace

	if s.cache != nil {
		if cached, ok := s.cache.Get(workspaceID); ok {
			ws = cached
		}
	}
	if ws == nil {
		var err error
		ws, err = s.repo.GetWorkspace(ctx, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get workspace: %w", err)
		}
		if ws == nil {
			return nil, domain.ErrWorkspaceNotFound
		}
		if s.cache != nil {
			s.cache.Set(ws)
		}
	}

	if ws.UserID != userID {
		return nil, domain.ErrNotWorkspaceOwner
	}
	return summarize(ws), nil
}

// ListWorkspaces returns all of the user's workspaces with capacity context.
func (s *service) ListWorkspaces(ctx context.Context, userID string) ([]Summary, error) {
	workspaces, err := s.repo.ListWorkspacesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	summaries := make([]Summary, 0, len(workspaces))
	for i := range workspaces {
		summaries = append(summaries, *summarize(&workspaces[i]))
	}
	return summaries, nil
}

// DeleteWorkspace removes a workspace and everything in it.
func (s *service) DeleteWorkspace(ctx context.Context, userID, workspaceID string) error {
	ws, err := s.repo.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get workspace: %w", err)
	}
	if ws == nil {
		return domain.ErrWorkspaceNotFound
	}
	if ws.UserID != userID {
		return domain.ErrNotWorkspaceOwner
	}

	if err := s.repo.DeleteWorkspace(ctx, workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(workspaceID)
	}

	logger.FromContext(ctx).Info("Workspace deleted", "workspace_id", workspaceID)
	return nil
}

func summarize(ws *domain.Workspace) *Summary {
	capacity := level.Capacity(ws.Level, ws.Difficulty)
	progress := 0
	if capacity > 0 {
		progress = 100 * ws.CurrentXP / capacity
	}
	return &Summary{
		Workspace:  *ws,
		CapacityXP: capacity,
		Progress:   progress,
	}
}
