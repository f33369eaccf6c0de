package repository

import (
	"context"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// Curriculum defines the interface for chapter and content persistence
type Curriculum interface {
	CreateChapter(ctx context.Context, ch *domain.Chapter) error
	GetChapter(ctx context.Context, chapterID string) (*domain.Chapter, error)
	ListChapters(ctx context.Context, workspaceID string) ([]domain.Chapter, error)
	SetChapterLocks(ctx context.Context, chapterID string, locked, forcedUnlocked bool) error
	// NextLockedChapter returns the first locked chapter after the given
	// order index, or nil when none remains.
	NextLockedChapter(ctx context.Context, workspaceID string, afterOrder int) (*domain.Chapter, error)

	CreateContent(ctx context.Context, c *domain.Content) error
	GetContent(ctx context.Context, contentID string) (*domain.Content, error)
	ListContents(ctx context.Context, chapterID string) ([]domain.Content, error)
	// CountUnfinished returns how many content items in the chapter are not
	// yet done.
	CountUnfinished(ctx context.Context, chapterID string) (int, error)
}
