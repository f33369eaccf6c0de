package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

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

// MockAttendanceRepository implements repository.Attendance for testing
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) GetDayRecord(ctx context.Context, workspaceID string, day time.Time) (*domain.Attendance, error) {
	args := m.Called(ctx, workspaceID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) GetDraft(ctx context.Context, workspaceID string, day time.Time) (*domain.Attendance, error) {
	args := m.Called(ctx, workspaceID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) GetLastCheckInDate(ctx context.Context, workspaceID string, before time.Time) (*time.Time, error) {
	args := m.Called(ctx, workspaceID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockAttendanceRepository) UpsertDraft(ctx context.Context, att *domain.Attendance) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}

func (m *MockAttendanceRepository) DeleteDraft(ctx context.Context, workspaceID string, day time.Time) error {
	args := m.Called(ctx, workspaceID, day)
	return args.Error(0)
}

func (m *MockAttendanceRepository) InsertAttendance(ctx context.Context, att *domain.Attendance) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListAttendance(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.Attendance, error) {
	args := m.Called(ctx, workspaceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) DeleteStaleDrafts(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockXPService implements xp.Service for testing. The entity mutation is
// not executed; transactional behavior is covered by the xp package tests.
type MockXPService struct {
	mock.Mock
}

func (m *MockXPService) ApplyDelta(ctx context.Context, userID, workspaceID string, delta int, mutate xp.Mutation) (*domain.XPResult, error) {
	args := m.Called(ctx, userID, workspaceID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.XPResult), args.Error(1)
}

const (
	testUserID      = "7b6e1cab-3f89-4f0d-9f32-04c6a3f0a001"
	testWorkspaceID = "7b6e1cab-3f89-4f0d-9f32-04c6a3f0a002"
)

func testWorkspace(difficulty domain.Difficulty, minHours float64, streak int) *domain.Workspace {
	return &domain.Workspace{
		ID:            testWorkspaceID,
		UserID:        testUserID,
		Name:          "algorithms",
		Difficulty:    difficulty,
		Level:         3,
		CurrentXP:     200,
		Streak:        streak,
		MinStudyHours: minHours,
	}
}

func newTestService(wsRepo *MockWorkspaceRepository, repo *MockAttendanceRepository, xpSvc *MockXPService, now time.Time) *service {
	return &service{
		workspaces: wsRepo,
		repo:       repo,
		xpSvc:      xpSvc,
		now:        func() time.Time { return now },
	}
}

func TestCheckIn_Success(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)
	today := DateOnly(now)
	yesterday := today.AddDate(0, 0, -1)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyHard, 1, 4)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)
	repo.On("GetDayRecord", mock.Anything, testWorkspaceID, today).Return(nil, nil)
	repo.On("GetLastCheckInDate", mock.Anything, testWorkspaceID, today).Return(&yesterday, nil)
	repo.On("GetDraft", mock.Anything, testWorkspaceID, today).Return(nil, nil)

	// Hard difficulty: floor(50 * 2.0) = 100
	xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, 100).
		Return(&domain.XPResult{UserTotalXP: 600, WorkspaceLevel: 3, WorkspaceXP: 300}, nil)

	start := now.Add(-2 * time.Hour)
	result, err := svc.CheckIn(context.Background(), testUserID, testWorkspaceID, start, now)

	require.NoError(t, err)
	assert.Equal(t, 5, result.Streak)
	assert.Equal(t, 100, result.XPAwarded)
	assert.Equal(t, domain.AttendanceNoteCheckedIn, result.Attendance.Note)
	assert.Equal(t, today, result.Attendance.WorkDate)
	xpSvc.AssertExpectations(t)
}

func TestCheckIn_FirstEverStartsStreakAtOne(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)
	today := DateOnly(now)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyEasy, 0, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)
	repo.On("GetDayRecord", mock.Anything, testWorkspaceID, today).Return(nil, nil)
	repo.On("GetLastCheckInDate", mock.Anything, testWorkspaceID, today).Return(nil, nil)
	repo.On("GetDraft", mock.Anything, testWorkspaceID, today).Return(nil, nil)

	// Easy difficulty: floor(50 * 1.0) = 50
	xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, 50).
		Return(&domain.XPResult{}, nil)

	result, err := svc.CheckIn(context.Background(), testUserID, testWorkspaceID, now.Add(-time.Hour), now)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 50, result.XPAwarded)
}

func TestCheckIn_SessionTooShort(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 2, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)

	// 90 minutes against a 2 hour minimum
	start := now.Add(-90 * time.Minute)
	_, err := svc.CheckIn(context.Background(), testUserID, testWorkspaceID, start, now)

	assert.ErrorIs(t, err, domain.ErrSessionTooShort)
	xpSvc.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)
	today := DateOnly(now)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 3)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)
	repo.On("GetDayRecord", mock.Anything, testWorkspaceID, today).
		Return(&domain.Attendance{Note: domain.AttendanceNoteCheckedIn}, nil)

	_, err := svc.CheckIn(context.Background(), testUserID, testWorkspaceID, now.Add(-time.Hour), now)

	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)
}

func TestCheckIn_InvalidTimes(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)

	_, err := svc.CheckIn(context.Background(), testUserID, testWorkspaceID, now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CheckIn(context.Background(), testUserID, testWorkspaceID, time.Time{}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckIn_NotOwner(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)

	_, err := svc.CheckIn(context.Background(), "someone-else", testWorkspaceID, now.Add(-time.Hour), now)

	assert.ErrorIs(t, err, domain.ErrNotWorkspaceOwner)
}

func TestRecordAbsence_RejectsReservedReasons(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)

	for _, reason := range []string{"", domain.AttendanceNoteDraft, domain.AttendanceNoteCheckedIn} {
		_, err := svc.RecordAbsence(context.Background(), testUserID, testWorkspaceID, reason)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "reason %q", reason)
	}
}

func TestRecordAbsence_Success(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)
	today := DateOnly(now)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)
	repo.On("GetDayRecord", mock.Anything, testWorkspaceID, today).Return(nil, nil)
	repo.On("InsertAttendance", mock.Anything, mock.MatchedBy(func(att *domain.Attendance) bool {
		return att.Note == "sick day" && att.WorkDate.Equal(today)
	})).Return(nil)

	att, err := svc.RecordAbsence(context.Background(), testUserID, testWorkspaceID, "sick day")

	require.NoError(t, err)
	assert.Equal(t, "sick day", att.Note)
	// Absences never touch XP or the streak
	xpSvc.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteDraft_NotFound(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)
	today := DateOnly(now)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)
	repo.On("GetDraft", mock.Anything, testWorkspaceID, today).Return(nil, nil)

	err := svc.DeleteDraft(context.Background(), testUserID, testWorkspaceID)

	assert.ErrorIs(t, err, domain.ErrAttendanceNotFound)
}

func TestSaveDraft_Success(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)
	repo.On("UpsertDraft", mock.Anything, mock.MatchedBy(func(att *domain.Attendance) bool {
		return att.IsDraft()
	})).Return(nil)

	draft, err := svc.SaveDraft(context.Background(), testUserID, testWorkspaceID, now.Add(-time.Hour), now)

	require.NoError(t, err)
	assert.True(t, draft.IsDraft())
}

func TestSaveDraft_ReturnsStoredID(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 0)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)

	// Re-saving over an existing draft keeps the stored row's ID; the
	// repository writes it back into the passed record.
	existingID := "5e0bcd8a-9f6c-4f1e-8d40-0a1b2c3d4e5f"
	repo.On("UpsertDraft", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		att := args.Get(1).(*domain.Attendance)
		att.ID = existingID
	}).Return(nil)

	draft, err := svc.SaveDraft(context.Background(), testUserID, testWorkspaceID, now.Add(-time.Hour), now)

	require.NoError(t, err)
	assert.Equal(t, existingID, draft.ID)
}

func TestCheckIn_XPFailurePropagates(t *testing.T) {
	now := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)
	today := DateOnly(now)

	wsRepo := new(MockWorkspaceRepository)
	repo := new(MockAttendanceRepository)
	xpSvc := new(MockXPService)
	svc := newTestService(wsRepo, repo, xpSvc, now)

	ws := testWorkspace(domain.DifficultyNormal, 0, 2)
	wsRepo.On("GetWorkspace", mock.Anything, testWorkspaceID).Return(ws, nil)
	repo.On("GetDayRecord", mock.Anything, testWorkspaceID, today).Return(nil, nil)
	repo.On("GetLastCheckInDate", mock.Anything, testWorkspaceID, today).Return(nil, nil)
	repo.On("GetDraft", mock.Anything, testWorkspaceID, today).Return(nil, nil)

	txErr := errors.New("tx failed")
	xpSvc.On("ApplyDelta", mock.Anything, testUserID, testWorkspaceID, 75).Return(nil, txErr)

	_, err := svc.CheckIn(context.Background(), testUserID, testWorkspaceID, now.Add(-time.Hour), now)

	assert.ErrorIs(t, err, txErr)
}
