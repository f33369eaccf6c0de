package domain

import "time"

// Workspace is a goal-tracking container owned by exactly one user.
// Invariant: 0 <= CurrentXP < level.Capacity(Level, Difficulty).
type Workspace struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Difficulty    Difficulty `json:"difficulty"`
	Level         int        `json:"level"`
	CurrentXP     int        `json:"current_xp"`
	Streak        int        `json:"streak"`
	MinStudyHours float64    `json:"min_study_hours"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// XPResult reports the post-transaction state after applying an XP delta.
type XPResult struct {
	UserTotalXP    int64 `json:"user_total_xp"`
	WorkspaceLevel int   `json:"workspace_level"`
	WorkspaceXP    int   `json:"workspace_xp"`
	LeveledUp      bool  `json:"leveled_up"`
}
