package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/level"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/repository"
)

// Profile is a user together with their position on the level curve.
type Profile struct {
	User  domain.User `json:"user"`
	Level level.Info  `json:"level"`
}

// Service defines the interface for user operations
type Service interface {
	RegisterUser(ctx context.Context, username string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*Profile, error)
}

type service struct {
	repo repository.User
}

// NewService creates a new user service
func NewService(repo repository.User) Service {
	return &service{repo: repo}
}

// RegisterUser creates a new user with zero XP.
func (s *service) RegisterUser(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Username: username,
		TotalXP:  0,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.FromContext(ctx).Info("User registered", "user_id", user.ID, "username", username)
	return user, nil
}

// GetProfile returns the user and their level info.
func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &Profile{User: *user, Level: level.FromXP(user.TotalXP)}, nil
}

// GetProfileByUsername returns the profile looked up by username.
func (s *service) GetProfileByUsername(ctx context.Context, username string) (*Profile, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &Profile{User: *user, Level: level.FromXP(user.TotalXP)}, nil
}
