package repository

import (
	"context"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// Workspace defines the interface for workspace persistence
type Workspace interface {
	CreateWorkspace(ctx context.Context, ws *domain.Workspace) error
	GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error)
	ListWorkspacesByUser(ctx context.Context, userID string) ([]domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, workspaceID string) error

	// BeginTx opens the transaction boundary used by the XP applier.
	BeginTx(ctx context.Context) (Tx, error)
}
