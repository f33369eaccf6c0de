package worker

import (
	"context"
	"sync"
	"time"

	"github.com/dawnfield/StudyQuest_Go/internal/attendance"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/repository"
)

// MaintenanceWorker runs a daily sweep shortly after midnight UTC that
// removes attendance drafts left over from previous days. A draft only
// means anything on the day it was written; once the day has passed it
// can never be confirmed.
type MaintenanceWorker struct {
	attendance repository.Attendance
	pool       *Pool
	timer      *time.Timer
	shutdown   chan struct{}
	mu         sync.Mutex

	// now is swappable for tests.
	now func() time.Time
}

// NewMaintenanceWorker creates a maintenance worker that enqueues its
// sweeps on the given pool.
func NewMaintenanceWorker(attendance repository.Attendance, pool *Pool) *MaintenanceWorker {
	return &MaintenanceWorker{
		attendance: attendance,
		pool:       pool,
		shutdown:   make(chan struct{}),
		now:        time.Now,
	}
}

// Start schedules the first sweep.
func (w *MaintenanceWorker) Start() {
	w.scheduleNext()
}

// scheduleNext arms the timer for the next sweep. Long waits go through a
// standby stage that wakes up shortly before the sweep time, so timer
// jitter over many hours cannot fire the sweep early.
func (w *MaintenanceWorker) scheduleNext() {
	duration := w.untilNextSweep()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	if duration > time.Hour {
		waitDuration := duration - 30*time.Minute
		w.timer = time.AfterFunc(waitDuration, w.scheduleNext)
		w.mu.Unlock()

		log.Info(LogMsgMaintenanceStandby, "next_check_at", w.now().UTC().Add(waitDuration))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// If the timer fired early, reschedule for the remainder.
		rem := w.untilNextSweep()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.pool.Enqueue(&draftSweepJob{attendance: w.attendance, now: w.now})
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgMaintenanceScheduled, "next_sweep_at", w.now().UTC().Add(duration))
}

// untilNextSweep returns the duration until the next 00:05 UTC.
func (w *MaintenanceWorker) untilNextSweep() time.Duration {
	now := w.now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// Stop cancels any pending sweep. In-flight sweeps are owned by the pool
// and drain with it.
func (w *MaintenanceWorker) Stop() {
	close(w.shutdown)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
}

// draftSweepJob is one stale-draft purge, executed on the worker pool.
type draftSweepJob struct {
	attendance repository.Attendance
	now        func() time.Time
}

func (j *draftSweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgMaintenanceStarting)

	today := attendance.DateOnly(j.now().UTC())
	removed, err := j.attendance.DeleteStaleDrafts(ctx, today)
	if err != nil {
		log.Error(LogMsgMaintenanceFailed, "error", err)
		return err
	}

	log.Info(LogMsgMaintenanceCompleted, "drafts_removed", removed)
	return nil
}
