package domain

import "time"

// Task is a personal to-do item within a workspace. XPReward is fixed at
// creation time from the difficulty so later difficulty edits cannot skew
// the reversal on un-toggle or delete.
type Task struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	XPReward    int        `json:"xp_reward"`
	IsDone      bool       `json:"is_done"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskXPReward returns the fixed XP reward for a task difficulty.
func TaskXPReward(d Difficulty) int {
	switch d {
	case DifficultyNormal:
		return 100
	case DifficultyHard:
		return 250
	default:
		return 25
	}
}
