package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

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

func TestUntilNextSweep(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			name: "evening waits until next morning",
			now:  time.Date(2026, 3, 10, 22, 5, 0, 0, time.UTC),
			want: 2 * time.Hour,
		},
		{
			name: "just before sweep time",
			now:  time.Date(2026, 3, 10, 0, 4, 0, 0, time.UTC),
			want: time.Minute,
		},
		{
			name: "exactly at sweep time rolls to tomorrow",
			now:  time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC),
			want: 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewMaintenanceWorker(nil, nil)
			w.now = func() time.Time { return tt.now }

			assert.Equal(t, tt.want, w.untilNextSweep())
		})
	}
}

func TestDraftSweepJob(t *testing.T) {
	repo := new(MockAttendanceRepository)
	now := time.Date(2026, 3, 11, 0, 5, 2, 0, time.UTC)
	today := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	repo.On("DeleteStaleDrafts", mock.Anything, today).Return(int64(3), nil)

	job := &draftSweepJob{attendance: repo, now: func() time.Time { return now }}
	err := job.Process(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDraftSweepJob_PropagatesError(t *testing.T) {
	repo := new(MockAttendanceRepository)
	repo.On("DeleteStaleDrafts", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	job := &draftSweepJob{attendance: repo, now: time.Now}
	err := job.Process(context.Background())

	assert.Error(t, err)
}

func TestMaintenanceWorker_StopCancelsTimer(t *testing.T) {
	repo := new(MockAttendanceRepository)
	pool := NewPool(1, 1)
	pool.Start()
	defer pool.Stop()

	w := NewMaintenanceWorker(repo, pool)
	w.Start()
	w.Stop()

	// No sweep should have been enqueued.
	repo.AssertNotCalled(t, "DeleteStaleDrafts", mock.Anything, mock.Anything)
}
