package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user row.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	id, err := parseUUID("user", user.ID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (user_id, username, total_xp, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, id, user.Username, user.TotalXP)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID fetches a user by ID, returning nil when not found.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUUID("user", userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, username, total_xp, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetUserByUsername fetches a user by username, returning nil when not found.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT user_id, username, total_xp, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.TotalXP, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
