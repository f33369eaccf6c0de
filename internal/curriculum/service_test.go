package curriculum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/repository"
	"github.com/dawnfield/StudyQuest_Go/internal/xp"
)

// MockWorkspaceRepository implements repository.Workspace for testing
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) CreateWorkspace(ctx context.Context, ws *domain.Workspace) error {
	args := m.Called(ctx, ws)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUser(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}

// MockCurriculumRepository implements repository.Curriculum for testing
type MockCurriculumRepository struct {
	mock.Mock
}

func (m *MockCurriculumRepository) CreateChapter(ctx context.Context, ch *domain.Chapter) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *MockCurriculumRepository) GetChapter(ctx context.Context, chapterID string) (*domain.Chapter, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chapter), args.Error(1)
}

func (m *MockCurriculumRepository) ListChapters(ctx context.Context, workspaceID string) ([]domain.Chapter, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chapter), args.Error(1)
}

func (m *MockCurriculumRepository) SetChapterLocks(ctx context.Context, chapterID string, locked, forcedUnlocked bool) error {
	args := m.Called(ctx, chapterID, locked, forcedUnlocked)
	return args.Error(0)
}

func (m *MockCurriculumRepository) NextLockedChapter(ctx context.Context, workspaceID string, afterOrder int) (*domain.Chapter, error) {
	args := m.Called(ctx, workspaceID, afterOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chapter), args.Error(1)
}

func (m *MockCurriculumRepository) CreateContent(ctx context.Context, c *domain.Content) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCurriculumRepository) GetContent(ctx context.Context, contentID string) (*domain.Content, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Content), args.Error(1)
}

func (m *MockCurriculumRepository) ListContents(ctx context.Context, chapterID string) ([]domain.Content, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Content), args.Error(1)
}

func (m *MockCurriculumRepository) CountUnfinished(ctx context.Context, chapterID string) (int, error) {
	args := m.Called(ctx, chapterID)
	return args.Int(0), args.Error(1)
}

// MockXPService implements xp.Service for testing. When tx is set the
// mutation runs against it so tests can observe what rides the transaction.
type MockXPService struct {
	mock.Mock
	tx repository.Tx
}

func (m *MockXPService) ApplyDelta(ctx context.Context, userID, workspaceID string, delta int, mutate xp.Mutation) (*domain.XPResult, error) {
	args := m.Called(ctx, userID, workspaceID, delta)
	if m.tx != nil {
		if err := mutate(ctx, m.tx); err != nil {
			return nil, err
		}
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.XPResult), args.Error(1)
}

// MockTx implements repository.Tx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTx) GetWorkspaceForUpdate(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockTx) UpdateUserTotalXP(ctx context.Context, userID string, totalXP int64) error {
	args := m.Called(ctx, userID, totalXP)
	return args.Error(0)
}

func (m *MockTx) UpdateWorkspaceProgress(ctx context.Context, workspaceID string, level, currentXP int) error {
	args := m.Called(ctx, workspaceID, level, currentXP)
	return args.Error(0)
}

func (m *MockTx) UpdateWorkspaceStreak(ctx context.Context, workspaceID string, streak int) error {
	args := m.Called(ctx, workspaceID, streak)
	return args.Error(0)
}

func (m *MockTx) InsertAttendance(ctx context.Context, att *domain.Attendance) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}

func (m *MockTx) DeleteAttendance(ctx context.Context, attendanceID string) error {
	args := m.Called(ctx, attendanceID)
	return args.Error(0)
}

func (m *MockTx) SetContentDone(ctx context.Context, contentID string, done bool) error {
	args := m.Called(ctx, contentID, done)
	return args.Error(0)
}

func (m *MockTx) DeleteContent(ctx context.Context, contentID string) error {
	args := m.Called(ctx, contentID)
	return args.Error(0)
}

func (m *MockTx) SetTaskDone(ctx context.Context, taskID string, done bool) error {
	args := m.Called(ctx, taskID, done)
	return args.Error(0)
}

func (m *MockTx) DeleteTask(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTx) SetChapterLocks(ctx context.Context, chapterID string, locked, forcedUnlocked bool) error {
	args := m.Called(ctx, chapterID, locked, forcedUnlocked)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

const (
	testUserID      = "9c1d4e5f-1111-4000-8000-000000000001"
	testWorkspaceID = "9c1d4e5f-1111-4000-8000-000000000002"
	testChapterID   = "9c1d4e5f-1111-4000-8000-000000000003"
	testContentID   = "9c1d4e5f-1111-4000-8000-000000000004"
)

func testWorkspace() *domain.Workspace {
	return &domain.Workspace{
		ID:         testWorkspaceID,
		UserID:     testUserID,
		Name:       "compilers",
		Difficulty: domain.DifficultyNormal,
		Level:      2,
	}
}

func newTestService(wsRepo *MockWorkspaceRepository, repo *MockCurriculumRepository, xpSvc *MockXPService) Service {
	return NewService(wsRepo, repo, xpSvc)
}

func TestCreateChapter_FirstStartsUnlocked(t *testing.T) {
	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockCurriculumRepository)
	svc := newTestService(wsRepo, repo, new(MockXPService))

	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)
	repo.On("ListChapters", mock.Anything, testWorkspaceID).Return([]domain.Chapter{}, nil)
	repo.On("CreateChapter", mock.Anything, mock.MatchedBy(func(ch *domain.Chapter) bool {
		return !ch.IsLocked && ch.OrderIndex == 0
	})).Return(nil)

	ch, err := svc.CreateChapter(context.Background(), testUserID, testWorkspaceID, "Lexing")

	require.NoError(t, err)
	assert.False(t, ch.IsLocked)
	assert.Equal(t, 0, ch.OrderIndex)
}

func TestCreateChapter_LaterStartsLocked(t *testing.T) {
	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockCurriculumRepository)
	svc := newTestService(wsRepo, repo, new(MockXPService))

	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)
	repo.On("ListChapters", mock.Anything, testWorkspaceID).
		Return([]domain.Chapter{{ID: "a"}, {ID: "b"}}, nil)
	repo.On("CreateChapter", mock.Anything, mock.Anything).Return(nil)

	ch, err := svc.CreateChapter(context.Background(), testUserID, testWorkspaceID, "Parsing")

	require.NoError(t, err)
	assert.True(t, ch.IsLocked)
	assert.Equal(t, 2, ch.OrderIndex)
}

func TestForceUnlockChapter(t *testing.T) {
	t.Run("locks in the penalty on a locked chapter", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		repo := new(MockCurriculumRepository)
		svc := newTestService(wsRepo, repo, new(MockXPService))

		ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID, IsLocked: true}
		repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
		wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)
		repo.On("SetChapterLocks", mock.Anything, testChapterID, true, true).Return(nil)

		got, err := svc.ForceUnlockChapter(context.Background(), testUserID, testChapterID)

		require.NoError(t, err)
		assert.True(t, got.IsLocked)
		assert.True(t, got.IsForcedUnlocked)
		assert.True(t, got.Penalized())
	})

	t.Run("rejects an already unlocked chapter", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		repo := new(MockCurriculumRepository)
		svc := newTestService(wsRepo, repo, new(MockXPService))

		ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID, IsLocked: false}
		repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
		wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)

		_, err := svc.ForceUnlockChapter(context.Background(), testUserID, testChapterID)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("is idempotent when already forced", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		repo := new(MockCurriculumRepository)
		svc := newTestService(wsRepo, repo, new(MockXPService))

		ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID, IsLocked: true, IsForcedUnlocked: true}
		repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
		wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)

		got, err := svc.ForceUnlockChapter(context.Background(), testUserID, testChapterID)

		require.NoError(t, err)
		assert.True(t, got.IsForcedUnlocked)
		repo.AssertNotCalled(t, "SetChapterLocks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreateContent_LockedChapter(t *testing.T) {
	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockCurriculumRepository)
	svc := newTestService(wsRepo, repo, new(MockXPService))

	ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID, IsLocked: true}
	repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)

	_, err := svc.CreateContent(context.Background(), testUserID, testChapterID, "Recursive descent", domain.DifficultyNormal)

	assert.ErrorIs(t, err, domain.ErrChapterLocked)
}

func TestToggleContent_GainAndLossUseSameReward(t *testing.T) {
	expected := Reward(testContentID, domain.DifficultyHard, false)

	setup := func(isDone bool) (Service, *MockXPService, *MockCurriculumRepository) {
		wsRepo := new(MockWorkspaceRepository)
		repo := new(MockCurriculumRepository)
		xpSvc := new(MockXPService)
		svc := newTestService(wsRepo, repo, xpSvc)

		content := &domain.Content{
			ID:         testContentID,
			ChapterID:  testChapterID,
			Difficulty: domain.DifficultyHard,
			IsDone:     isDone,
		}
		ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID, IsLocked: false, OrderIndex: 0}
		repo.On("GetContent", mock.Anything, testContentID).Return(content, nil)
		repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
		wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)
		return svc, xpSvc, repo
	}

	t.Run("marking done grants the reward", func(t *testing.T) {
		svc, xpSvc, repo := setup(false)
		xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, expected).
			Return(&domain.XPResult{LeveledUp: true}, nil)
		repo.On("CountUnfinished", mock.Anything, testChapterID).Return(3, nil)

		result, err := svc.ToggleContent(context.Background(), testUserID, testContentID)

		require.NoError(t, err)
		assert.Equal(t, domain.ToggleGain, result.Direction)
		assert.Equal(t, expected, result.RewardAmount)
		assert.True(t, result.Content.IsDone)
	})

	t.Run("unmarking takes back the identical amount", func(t *testing.T) {
		svc, xpSvc, _ := setup(true)
		xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, -expected).
			Return(&domain.XPResult{}, nil)

		result, err := svc.ToggleContent(context.Background(), testUserID, testContentID)

		require.NoError(t, err)
		assert.Equal(t, domain.ToggleLoss, result.Direction)
		assert.Equal(t, expected, result.RewardAmount)
		assert.False(t, result.Content.IsDone)
	})
}

func TestToggleContent_PenalizedChapterShrinksReward(t *testing.T) {
	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockCurriculumRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc)

	content := &domain.Content{ID: testContentID, ChapterID: testChapterID, Difficulty: domain.DifficultyNormal}
	ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID, IsLocked: true, IsForcedUnlocked: true}
	repo.On("GetContent", mock.Anything, testContentID).Return(content, nil)
	repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)

	penalized := Reward(testContentID, domain.DifficultyNormal, true)
	xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, penalized).
		Return(&domain.XPResult{}, nil)
	repo.On("CountUnfinished", mock.Anything, testChapterID).Return(2, nil)

	result, err := svc.ToggleContent(context.Background(), testUserID, testContentID)

	require.NoError(t, err)
	assert.Equal(t, penalized, result.RewardAmount)
	assert.Less(t, penalized, Reward(testContentID, domain.DifficultyNormal, false))
}

func TestToggleContent_CompletingChapterUnlocksNext(t *testing.T) {
	setup := func() (*MockCurriculumRepository, *MockTx, Service) {
		wsRepo := new(MockWorkspaceRepository)
		repo := new(MockCurriculumRepository)
		tx := new(MockTx)
		xpSvc := &MockXPService{tx: tx}
		svc := newTestService(wsRepo, repo, xpSvc)

		content := &domain.Content{ID: testContentID, ChapterID: testChapterID, Difficulty: domain.DifficultyEasy}
		ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID, OrderIndex: 0}
		next := &domain.Chapter{ID: "next-chapter", WorkspaceID: testWorkspaceID, OrderIndex: 1, IsLocked: true}

		repo.On("GetContent", mock.Anything, testContentID).Return(content, nil)
		repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
		wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)
		xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, mock.Anything).
			Return(&domain.XPResult{}, nil)

		// The toggled item is the chapter's last unfinished one.
		repo.On("CountUnfinished", mock.Anything, testChapterID).Return(1, nil)
		repo.On("NextLockedChapter", mock.Anything, testWorkspaceID, 0).Return(next, nil)
		return repo, tx, svc
	}

	t.Run("unlock rides the toggle transaction", func(t *testing.T) {
		repo, tx, svc := setup()
		tx.On("SetContentDone", mock.Anything, testContentID, true).Return(nil)
		tx.On("SetChapterLocks", mock.Anything, "next-chapter", false, false).Return(nil)

		_, err := svc.ToggleContent(context.Background(), testUserID, testContentID)

		require.NoError(t, err)
		tx.AssertExpectations(t)
		repo.AssertNotCalled(t, "SetChapterLocks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unlock failure fails the whole toggle", func(t *testing.T) {
		_, tx, svc := setup()
		tx.On("SetContentDone", mock.Anything, testContentID, true).Return(nil)
		tx.On("SetChapterLocks", mock.Anything, "next-chapter", false, false).Return(assert.AnError)

		_, err := svc.ToggleContent(context.Background(), testUserID, testContentID)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestDeleteContent_ReversesRewardWhenDone(t *testing.T) {
	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockCurriculumRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc)

	content := &domain.Content{ID: testContentID, ChapterID: testChapterID, Difficulty: domain.DifficultyEasy, IsDone: true}
	ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID}
	repo.On("GetContent", mock.Anything, testContentID).Return(content, nil)
	repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)

	reward := Reward(testContentID, domain.DifficultyEasy, false)
	xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, -reward).
		Return(&domain.XPResult{}, nil)

	err := svc.DeleteContent(context.Background(), testUserID, testContentID)

	require.NoError(t, err)
	xpSvc.AssertExpectations(t)
}

func TestDeleteContent_NoXPChangeWhenNotDone(t *testing.T) {
	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockCurriculumRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc)

	content := &domain.Content{ID: testContentID, ChapterID: testChapterID, Difficulty: domain.DifficultyEasy}
	ch := &domain.Chapter{ID: testChapterID, WorkspaceID: testWorkspaceID}
	repo.On("GetContent", mock.Anything, testContentID).Return(content, nil)
	repo.On("GetChapter", mock.Anything, testChapterID).Return(ch, nil)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(testWorkspace(), nil)

	xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, 0).
		Return(&domain.XPResult{}, nil)

	err := svc.DeleteContent(context.Background(), testUserID, testContentID)

	require.NoError(t, err)
}
