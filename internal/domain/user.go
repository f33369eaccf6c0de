package domain

import "time"

// User represents a registered user. TotalXP is the lifetime XP across all
// of the user's workspaces and only ever changes through the XP applier.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	TotalXP   int64     `json:"total_xp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
