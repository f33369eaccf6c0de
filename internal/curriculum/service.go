package curriculum

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

// Service defines the interface for chapter and content operations
type Service interface {
	CreateChapter(ctx context.Context, userID, workspaceID, title string) (*domain.Chapter, error)
	ListChapters(ctx context.Context, userID, workspaceID string) ([]domain.Chapter, error)
	ForceUnlockChapter(ctx context.Context, userID, chapterID string) (*domain.Chapter, error)

	CreateContent(ctx context.Context, userID, chapterID, title string, difficulty domain.Difficulty) (*domain.Content, error)
	ListContents(ctx context.Context, userID, chapterID string) ([]domain.Content, error)
	ToggleContent(ctx context.Context, userID, contentID string) (*domain.ToggleResult, error)
	DeleteContent(ctx context.Context, userID, contentID string) error
}

type service struct {
	workspaces repository.Workspace
	repo       repository.Curriculum
	xpSvc      xp.Service
}

// NewService creates a new curriculum service
func NewService(workspaces repository.Workspace, repo repository.Curriculum, xpSvc xp.Service) Service {
	return &service{workspaces: workspaces, repo: repo, xpSvc: xpSvc}
}

// CreateChapter appends a chapter to the workspace. The first chapter starts
// unlocked; every later one starts locked until its predecessor is finished
// or it is force-unlocked.
func (s *service) CreateChapter(ctx context.Context, userID, workspaceID, title string) (*domain.Chapter, error) {
	if _, err := s.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("%w: chapter title is required", domain.ErrInvalidInput)
	}

	existing, err := s.repo.ListChapters(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}

	ch := &domain.Chapter{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Title:       title,
		OrderIndex:  len(existing),
		IsLocked:    len(existing) > 0,
	}
	if err := s.repo.CreateChapter(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}
	return ch, nil
}

// ListChapters returns the workspace's chapters in curriculum order.
func (s *service) ListChapters(ctx context.Context, userID, workspaceID string) ([]domain.Chapter, error) {
	if _, err := s.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	chapters, err := s.repo.ListChapters(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

// ForceUnlockChapter opens a still-locked chapter ahead of schedule. The
// chapter stays formally locked, which permanently applies the reward
// penalty to all content inside it.
func (s *service) ForceUnlockChapter(ctx context.Context, userID, chapterID string) (*domain.Chapter, error) {
	ch, _, err := s.ownedChapter(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}
	if !ch.IsLocked {
		return nil, fmt.Errorf("%w: chapter is already unlocked", domain.ErrInvalidInput)
	}
	if ch.IsForcedUnlocked {
		return ch, nil
	}

	if err := s.repo.SetChapterLocks(ctx, chapterID, true, true); err != nil {
		return nil, fmt.Errorf("failed to force unlock chapter: %w", err)
	}
	ch.IsForcedUnlocked = true

	metrics.ForcedUnlocks.Inc()
	logger.FromContext(ctx).Info(LogMsgChapterForced, "chapter_id", chapterID)
	return ch, nil
}

// CreateContent adds a content item to an accessible chapter.
func (s *service) CreateContent(ctx context.Context, userID, chapterID, title string, difficulty domain.Difficulty) (*domain.Content, error) {
	ch, _, err := s.ownedChapter(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("%w: content title is required", domain.ErrInvalidInput)
	}
	if !difficulty.Valid() {
		return nil, domain.ErrInvalidDifficulty
	}
	if !ch.Accessible() {
		return nil, domain.ErrChapterLocked
	}

	c := &domain.Content{
		ID:         uuid.NewString(),
		ChapterID:  chapterID,
		Title:      title,
		Difficulty: difficulty,
	}
	if err := s.repo.CreateContent(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}
	return c, nil
}

// ListContents returns the chapter's content items.
func (s *service) ListContents(ctx context.Context, userID, chapterID string) ([]domain.Content, error) {
	if _, _, err := s.ownedChapter(ctx, userID, chapterID); err != nil {
		return nil, err
	}
	contents, err := s.repo.ListContents(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	return contents, nil
}

// ToggleContent flips a content item's completion state. Marking complete
// grants the deterministic reward, unmarking takes back the identical
// amount, and the isDone flip commits with the XP delta.
func (s *service) ToggleContent(ctx context.Context, userID, contentID string) (*domain.ToggleResult, error) {
	log := logger.FromContext(ctx)

	content, err := s.repo.GetContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	if content == nil {
		return nil, domain.ErrContentNotFound
	}

	ch, ws, err := s.ownedChapter(ctx, userID, content.ChapterID)
	if err != nil {
		return nil, err
	}
	if !ch.Accessible() {
		return nil, domain.ErrChapterLocked
	}

	reward := Reward(content.ID, content.Difficulty, ch.Penalized())

	delta := reward
	direction := domain.ToggleGain
	if content.IsDone {
		delta = -reward
		direction = domain.ToggleLoss
	}
	markingDone := !content.IsDone

	var next *domain.Chapter
	if markingDone {
		next, err = s.nextChapterToUnlock(ctx, ch)
		if err != nil {
			return nil, err
		}
	}

	result, err := s.xpSvc.ApplyDelta(ctx, userID, ws.ID, delta, func(ctx context.Context, tx repository.Tx) error {
		if err := tx.SetContentDone(ctx, contentID, markingDone); err != nil {
			return err
		}
		if next != nil {
			return tx.SetChapterLocks(ctx, next.ID, false, next.IsForcedUnlocked)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	content.IsDone = markingDone

	metrics.ContentToggles.WithLabelValues(direction).Inc()
	log.Info(LogMsgContentToggled,
		"content_id", contentID,
		"direction", direction,
		"reward", reward,
		"penalized", ch.Penalized())

	if next != nil {
		log.Info(LogMsgChapterUnlocked, "chapter_id", next.ID, "order_index", next.OrderIndex)
	}

	return &domain.ToggleResult{
		Content:      *content,
		RewardAmount: reward,
		Direction:    direction,
		XP:           *result,
	}, nil
}

// DeleteContent removes a content item. Completed content gives back its
// reward in the same transaction as the delete.
func (s *service) DeleteContent(ctx context.Context, userID, contentID string) error {
	content, err := s.repo.GetContent(ctx, contentID)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}
	if content == nil {
		return domain.ErrContentNotFound
	}

	ch, ws, err := s.ownedChapter(ctx, userID, content.ChapterID)
	if err != nil {
		return err
	}

	delta := 0
	if content.IsDone {
		delta = -Reward(content.ID, content.Difficulty, ch.Penalized())
	}

	_, err = s.xpSvc.ApplyDelta(ctx, userID, ws.ID, delta, func(ctx context.Context, tx repository.Tx) error {
		return tx.DeleteContent(ctx, contentID)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgContentDeleted, "content_id", contentID, "reversed_xp", -delta)
	return nil
}

// nextChapterToUnlock decides, before a content item is marked done, whether
// that mark completes its chapter and which locked chapter opens as a result.
// The item itself is still unfinished here, so completion means exactly one
// unfinished item remains. The returned chapter is unlocked inside the same
// transaction as the toggle.
func (s *service) nextChapterToUnlock(ctx context.Context, ch *domain.Chapter) (*domain.Chapter, error) {
	remaining, err := s.repo.CountUnfinished(ctx, ch.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unfinished content: %w", err)
	}
	if remaining != 1 {
		return nil, nil
	}

	next, err := s.repo.NextLockedChapter(ctx, ch.WorkspaceID, ch.OrderIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to find next locked chapter: %w", err)
	}
	return next, nil
}

func (s *service) ownedChapter(ctx context.Context, userID, chapterID string) (*domain.Chapter, *domain.Workspace, error) {
	ch, err := s.repo.GetChapter(ctx, chapterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	if ch == nil {
		return nil, nil, domain.ErrChapterNotFound
	}
	ws, err := s.ownedWorkspace(ctx, userID, ch.WorkspaceID)
	if err != nil {
		return nil, nil, err
	}
	return ch, ws, nil
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
