package domain

import "time"

// Chapter groups curriculum content within a workspace, ordered by
// OrderIndex. A chapter is accessible when !IsLocked || IsForcedUnlocked.
// Forcing an unlock while the chapter is still formally locked activates a
// permanent XP penalty on all content within it.
type Chapter struct {
	ID               string    `json:"id"`
	WorkspaceID      string    `json:"workspace_id"`
	Title            string    `json:"title"`
	OrderIndex       int       `json:"order_index"`
	IsLocked         bool      `json:"is_locked"`
	IsForcedUnlocked bool      `json:"is_forced_unlocked"`
	CreatedAt        time.Time `json:"created_at"`
}

// Accessible reports whether the chapter's content can be worked on.
func (c *Chapter) Accessible() bool {
	return !c.IsLocked || c.IsForcedUnlocked
}

// Penalized reports whether content rewards in this chapter carry the
// force-unlock penalty.
func (c *Chapter) Penalized() bool {
	return c.IsLocked && c.IsForcedUnlocked
}

// Toggle directions for completion changes.
const (
	ToggleGain = "gain"
	ToggleLoss = "loss"
)

// ToggleResult reports a completion toggle and its XP effect.
type ToggleResult struct {
	Content      Content  `json:"content"`
	RewardAmount int      `json:"reward_amount"`
	Direction    string   `json:"direction"`
	XP           XPResult `json:"xp"`
}

// Content is a single piece of curriculum within a chapter.
type Content struct {
	ID         string     `json:"id"`
	ChapterID  string     `json:"chapter_id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	IsDone     bool       `json:"is_done"`
	CreatedAt  time.Time  `json:"created_at"`
}
