package domain

import "time"

// Attendance note markers. Any other note value is a free-text absence
// reason; absence rows count as the day's non-draft row but never extend
// the streak.
const (
	AttendanceNoteDraft     = "DRAFT"
	AttendanceNoteCheckedIn = "CHECKED_IN"
)

// Attendance records one study session (or absence) for a workspace.
// At most one non-draft row may exist per workspace per calendar day.
type Attendance struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	WorkDate    time.Time `json:"work_date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

// CheckInResult reports the outcome of a confirmed check-in.
type CheckInResult struct {
	Attendance Attendance `json:"attendance"`
	Streak     int        `json:"streak"`
	XPAwarded  int        `json:"xp_awarded"`
	XP         XPResult   `json:"xp"`
}

// IsDraft reports whether the row is an uncommitted draft.
func (a *Attendance) IsDraft() bool {
	return a.Note == AttendanceNoteDraft
}

// IsCheckIn reports whether the row is a confirmed check-in.
func (a *Attendance) IsCheckIn() bool {
	return a.Note == AttendanceNoteCheckedIn
}

// DurationMin returns the session length in whole minutes.
func (a *Attendance) DurationMin() int {
	return int(a.EndTime.Sub(a.StartTime).Minutes())
}
