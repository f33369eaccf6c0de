package xp

import (
	"context"
	"fmt"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/level"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/metrics"
	"github.com/dawnfield/StudyQuest_Go/internal/repository"
)

// Mutation is an entity write that rides in the same transaction as the XP
// delta: the attendance insert, the isDone flip, the delete that triggered
// the reversal.
type Mutation func(ctx context.Context, tx repository.Tx) error

// Invalidator drops cached workspace reads after an XP-mutating commit.
type Invalidator interface {
	Invalidate(workspaceID string)
}

// Service applies signed XP deltas to a (user, workspace) pair atomically.
type Service interface {
	ApplyDelta(ctx context.Context, userID, workspaceID string, delta int, mutate Mutation) (*domain.XPResult, error)
}

type service struct {
	repo        repository.Workspace
	invalidator Invalidator
}

// NewService creates a new XP service. invalidator may be nil.
func NewService(repo repository.Workspace, invalidator Invalidator) Service {
	return &service{repo: repo, invalidator: invalidator}
}

// ApplyDelta locks the workspace and user rows, rolls the workspace level
// forward or backward to absorb the delta, adjusts the user's total XP by
// the same amount, and runs the entity mutation - all in one transaction.
// On any failure everything rolls back and the caller sees no partial state.
func (s *service) ApplyDelta(ctx context.Context, userID, workspaceID string, delta int, mutate Mutation) (*domain.XPResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin xp transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Lock order is workspace first, then owner. Every XP path goes through
	// here, so the ordering is consistent and deadlock-free.
	ws, err := tx.GetWorkspaceForUpdate(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock workspace: %w", err)
	}
	if ws == nil {
		return nil, domain.ErrWorkspaceNotFound
	}

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if ws.UserID != user.ID {
		return nil, domain.ErrNotWorkspaceOwner
	}

	oldLevel := ws.Level
	newLevel, newXP := level.Roll(ws.Level, ws.CurrentXP+delta, ws.Difficulty)

	newTotal := user.TotalXP + int64(delta)
	if newTotal < 0 {
		newTotal = 0
	}

	if err := tx.UpdateWorkspaceProgress(ctx, workspaceID, newLevel, newXP); err != nil {
		return nil, fmt.Errorf("failed to update workspace progress: %w", err)
	}
	if err := tx.UpdateUserTotalXP(ctx, userID, newTotal); err != nil {
		return nil, fmt.Errorf("failed to update user xp: %w", err)
	}

	if mutate != nil {
		if err := mutate(ctx, tx); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit xp transaction: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(workspaceID)
	}

	recordMetrics(delta, oldLevel, newLevel)

	log.Info("Applied XP delta",
		"user_id", userID,
		"workspace_id", workspaceID,
		"delta", delta,
		"workspace_level", newLevel,
		"workspace_xp", newXP,
		"user_total_xp", newTotal)

	return &domain.XPResult{
		UserTotalXP:    newTotal,
		WorkspaceLevel: newLevel,
		WorkspaceXP:    newXP,
		LeveledUp:      newLevel > oldLevel,
	}, nil
}

func recordMetrics(delta, oldLevel, newLevel int) {
	if delta >= 0 {
		metrics.XPApplied.WithLabelValues(metrics.DirectionGain).Add(float64(delta))
	} else {
		metrics.XPApplied.WithLabelValues(metrics.DirectionLoss).Add(float64(-delta))
	}
	if newLevel > oldLevel {
		metrics.WorkspaceLevelUps.Add(float64(newLevel - oldLevel))
	}
}
