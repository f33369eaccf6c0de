package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// CurriculumRepository implements the chapter and content repository for
// PostgreSQL
type CurriculumRepository struct {
	db *pgxpool.Pool
}

// NewCurriculumRepository creates a new CurriculumRepository
func NewCurriculumRepository(db *pgxpool.Pool) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

const chapterColumns = `chapter_id, workspace_id, title, order_index, is_locked, is_forced_unlocked, created_at`

const contentColumns = `content_id, chapter_id, title, difficulty, is_done, created_at`

// CreateChapter inserts a new chapter row.
func (r *CurriculumRepository) CreateChapter(ctx context.Context, ch *domain.Chapter) error {
	id, err := parseUUID("chapter", ch.ID)
	if err != nil {
		return err
	}
	workspaceID, err := parseUUID("workspace", ch.WorkspaceID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO chapters (chapter_id, workspace_id, title, order_index, is_locked, is_forced_unlocked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err = r.db.Exec(ctx, query, id, workspaceID, ch.Title, ch.OrderIndex, ch.IsLocked, ch.IsForcedUnlocked)
	if err != nil {
		return fmt.Errorf("failed to insert chapter: %w", err)
	}
	return nil
}

// GetChapter fetches a chapter by ID, returning nil when not found.
func (r *CurriculumRepository) GetChapter(ctx context.Context, chapterID string) (*domain.Chapter, error) {
	id, err := parseUUID("chapter", chapterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE chapter_id = $1`
	return scanChapter(r.db.QueryRow(ctx, query, id))
}

// ListChapters returns the workspace's chapters in curriculum order.
func (r *CurriculumRepository) ListChapters(ctx context.Context, workspaceID string) ([]domain.Chapter, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE workspace_id = $1 ORDER BY order_index ASC`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []domain.Chapter
	for rows.Next() {
		ch, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, *ch)
	}
	return chapters, rows.Err()
}

// SetChapterLocks updates a chapter's lock flags.
func (r *CurriculumRepository) SetChapterLocks(ctx context.Context, chapterID string, locked, forcedUnlocked bool) error {
	return setChapterLocks(ctx, r.db, chapterID, locked, forcedUnlocked)
}

// NextLockedChapter returns the first locked chapter after the given order
// index, or nil when none remains.
func (r *CurriculumRepository) NextLockedChapter(ctx context.Context, workspaceID string, afterOrder int) (*domain.Chapter, error) {
	id, err := parseUUID("workspace", workspaceID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + chapterColumns + `
		FROM chapters
		WHERE workspace_id = $1 AND order_index > $2 AND is_locked = TRUE
		ORDER BY order_index ASC
		LIMIT 1
	`
	return scanChapter(r.db.QueryRow(ctx, query, id, afterOrder))
}

// CreateContent inserts a new content row.
func (r *CurriculumRepository) CreateContent(ctx context.Context, c *domain.Content) error {
	id, err := parseUUID("content", c.ID)
	if err != nil {
		return err
	}
	chapterID, err := parseUUID("chapter", c.ChapterID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO contents (content_id, chapter_id, title, difficulty, is_done, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err = r.db.Exec(ctx, query, id, chapterID, c.Title, c.Difficulty, c.IsDone)
	if err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}

// GetContent fetches a content item by ID, returning nil when not found.
func (r *CurriculumRepository) GetContent(ctx context.Context, contentID string) (*domain.Content, error) {
	id, err := parseUUID("content", contentID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + contentColumns + ` FROM contents WHERE content_id = $1`
	return scanContent(r.db.QueryRow(ctx, query, id))
}

// ListContents returns the chapter's content items, oldest first.
func (r *CurriculumRepository) ListContents(ctx context.Context, chapterID string) ([]domain.Content, error) {
	id, err := parseUUID("chapter", chapterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + contentColumns + ` FROM contents WHERE chapter_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	defer rows.Close()

	var contents []domain.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, *c)
	}
	return contents, rows.Err()
}

// CountUnfinished returns how many content items in the chapter are not done.
func (r *CurriculumRepository) CountUnfinished(ctx context.Context, chapterID string) (int, error) {
	id, err := parseUUID("chapter", chapterID)
	if err != nil {
		return 0, err
	}

	var count int
	query := `SELECT COUNT(*) FROM contents WHERE chapter_id = $1 AND is_done = FALSE`
	if err := r.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unfinished contents: %w", err)
	}
	return count, nil
}

func setChapterLocks(ctx context.Context, ex executor, chapterID string, locked, forcedUnlocked bool) error {
	id, err := parseUUID("chapter", chapterID)
	if err != nil {
		return err
	}

	query := `UPDATE chapters SET is_locked = $1, is_forced_unlocked = $2 WHERE chapter_id = $3`
	tag, err := ex.Exec(ctx, query, locked, forcedUnlocked, id)
	if err != nil {
		return fmt.Errorf("failed to update chapter locks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChapterNotFound
	}
	return nil
}

func scanChapter(row pgx.Row) (*domain.Chapter, error) {
	var ch domain.Chapter
	err := row.Scan(&ch.ID, &ch.WorkspaceID, &ch.Title, &ch.OrderIndex,
		&ch.IsLocked, &ch.IsForcedUnlocked, &ch.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan chapter: %w", err)
	}
	return &ch, nil
}

func scanContent(row pgx.Row) (*domain.Content, error) {
	var c domain.Content
	err := row.Scan(&c.ID, &c.ChapterID, &c.Title, &c.Difficulty, &c.IsDone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan content: %w", err)
	}
	return &c, nil
}
