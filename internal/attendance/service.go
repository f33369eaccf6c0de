package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/metrics"
	"github.com/dawnfield/StudyQuest_Go/internal/repository"
	"github.com/dawnfield/StudyQuest_Go/internal/xp"
)

// Service defines the interface for attendance operations
type Service interface {
	CheckIn(ctx context.Context, userID, workspaceID string, start, end time.Time) (*domain.CheckInResult, error)
	SaveDraft(ctx context.Context, userID, workspaceID string, start, end time.Time) (*domain.Attendance, error)
	DeleteDraft(ctx context.Context, userID, workspaceID string) error
	RecordAbsence(ctx context.Context, userID, workspaceID, reason string) (*domain.Attendance, error)
	ListAttendance(ctx context.Context, userID, workspaceID string, from, to time.Time) ([]domain.Attendance, error)
}

type service struct {
	workspaces repository.Workspace
	repo       repository.Attendance
	xpSvc      xp.Service
	now        func() time.Time
}

// NewService creates a new attendance service
func NewService(workspaces repository.Workspace, repo repository.Attendance, xpSvc xp.Service) Service {
	return &service{
		workspaces: workspaces,
		repo:       repo,
		xpSvc:      xpSvc,
		now:        time.Now,
	}
}

// CheckIn confirms today's attendance for a workspace. The session must meet
// the workspace's minimum study time, and only one confirmed row may exist
// per day. The attendance row, the streak update and the XP award commit in
// a single transaction.
func (s *service) CheckIn(ctx context.Context, userID, workspaceID string, start, end time.Time) (*domain.CheckInResult, error) {
	log := logger.FromContext(ctx)

	ws, err := s.ownedWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end time are required", domain.ErrInvalidInput)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}

	durationMin := end.Sub(start).Minutes()
	if durationMin < ws.MinStudyHours*minutesPerHour {
		return nil, fmt.Errorf("%w: %.0f min < %.0f min required",
			domain.ErrSessionTooShort, durationMin, ws.MinStudyHours*minutesPerHour)
	}

	today := DateOnly(s.now())

	existing, err := s.repo.GetDayRecord(ctx, workspaceID, today)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetDayRecordFailed, err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyCheckedIn
	}

	prior, err := s.repo.GetLastCheckInDate(ctx, workspaceID, today)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLastCheckInFailed, err)
	}
	newStreak := EvaluateStreak(prior, today, ws.Streak)

	draft, err := s.repo.GetDraft(ctx, workspaceID, today)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetDraftFailed, err)
	}

	att := &domain.Attendance{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		WorkDate:    today,
		StartTime:   start,
		EndTime:     end,
		Note:        domain.AttendanceNoteCheckedIn,
	}

	reward := int(math.Floor(CheckInBaseXP * ws.Difficulty.Multiplier()))

	result, err := s.xpSvc.ApplyDelta(ctx, userID, workspaceID, reward, func(ctx context.Context, tx repository.Tx) error {
		if draft != nil {
			// The day's draft is consumed by the confirmed check-in.
			if err := tx.DeleteAttendance(ctx, draft.ID); err != nil {
				return fmt.Errorf("failed to consume draft: %w", err)
			}
		}
		if err := tx.InsertAttendance(ctx, att); err != nil {
			return fmt.Errorf("failed to insert attendance: %w", err)
		}
		if err := tx.UpdateWorkspaceStreak(ctx, workspaceID, newStreak); err != nil {
			return fmt.Errorf("failed to update streak: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CheckIns.Inc()
	if prior != nil && newStreak == 1 {
		metrics.StreakResets.Inc()
	}

	log.Info(LogMsgCheckedIn,
		"workspace_id", workspaceID,
		"streak", newStreak,
		"xp", reward,
		"duration_min", int(durationMin))

	return &domain.CheckInResult{
		Attendance: *att,
		Streak:     newStreak,
		XPAwarded:  reward,
		XP:         *result,
	}, nil
}

// SaveDraft creates or replaces today's draft row. Drafts never affect
// streak or XP and may be deleted freely.
func (s *service) SaveDraft(ctx context.Context, userID, workspaceID string, start, end time.Time) (*domain.Attendance, error) {
	if _, err := s.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	today := DateOnly(s.now())

	att := &domain.Attendance{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		WorkDate:    today,
		StartTime:   start,
		EndTime:     end,
		Note:        domain.AttendanceNoteDraft,
	}
	if err := s.repo.UpsertDraft(ctx, att); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	logger.FromContext(ctx).Debug(LogMsgDraftSaved, "workspace_id", workspaceID)
	return att, nil
}

// DeleteDraft removes today's draft row.
func (s *service) DeleteDraft(ctx context.Context, userID, workspaceID string) error {
	if _, err := s.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return err
	}

	today := DateOnly(s.now())

	draft, err := s.repo.GetDraft(ctx, workspaceID, today)
	if err != nil {
		return fmt.Errorf(ErrMsgGetDraftFailed, err)
	}
	if draft == nil {
		return domain.ErrAttendanceNotFound
	}

	if err := s.repo.DeleteDraft(ctx, workspaceID, today); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	logger.FromContext(ctx).Debug(LogMsgDraftDeleted, "workspace_id", workspaceID)
	return nil
}

// RecordAbsence writes today's non-draft row with a free-text reason. No XP
// is granted and the streak is left alone; the gap resets it at the next
// check-in.
func (s *service) RecordAbsence(ctx context.Context, userID, workspaceID, reason string) (*domain.Attendance, error) {
	if _, err := s.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	if reason == "" || reason == domain.AttendanceNoteDraft || reason == domain.AttendanceNoteCheckedIn {
		return nil, fmt.Errorf("%w: absence reason must be free text", domain.ErrInvalidInput)
	}

	today := DateOnly(s.now())

	existing, err := s.repo.GetDayRecord(ctx, workspaceID, today)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetDayRecordFailed, err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyCheckedIn
	}

	att := &domain.Attendance{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		WorkDate:    today,
		Note:        reason,
	}
	if err := s.repo.InsertAttendance(ctx, att); err != nil {
		return nil, fmt.Errorf("failed to insert absence: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgAbsenceLogged, "workspace_id", workspaceID)
	return att, nil
}

// ListAttendance returns the workspace's attendance rows in [from, to].
func (s *service) ListAttendance(ctx context.Context, userID, workspaceID string, from, to time.Time) ([]domain.Attendance, error) {
	if _, err := s.ownedWorkspace(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAttendance(ctx, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return rows, nil
}

func (s *service) ownedWorkspace(ctx context.Context, userID, workspaceID string) (*domain.Workspace, error) {
	ws, err := s.workspaces.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetWorkspaceFailed, err)
	}
	if ws == nil {
		return nil, domain.ErrWorkspaceNotFound
	}
	if ws.UserID != userID {
		return nil, domain.ErrNotWorkspaceOwner
	}
	return ws, nil
}
