package level

import (
	"math"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// Capacity returns the XP needed to complete the given workspace level.
func Capacity(lvl int, difficulty domain.Difficulty) int {
	if lvl < MinWorkspaceLevel {
		lvl = MinWorkspaceLevel
	}
	return int(math.Floor(BaseCapacity * float64(lvl) * difficulty.Multiplier()))
}

// Roll normalizes a workspace (level, currentXP) pair after a delta has been
// added to currentXP. Multi-level jumps in either direction resolve in one
// call. XP cannot go negative at the floor level; the surplus loss is
// discarded there.
func Roll(lvl, currentXP int, difficulty domain.Difficulty) (newLevel, newXP int) {
	if lvl < MinWorkspaceLevel {
		lvl = MinWorkspaceLevel
	}

	for currentXP >= Capacity(lvl, difficulty) {
		currentXP -= Capacity(lvl, difficulty)
		lvl++
	}

	for currentXP < 0 && lvl > MinWorkspaceLevel {
		lvl--
		currentXP += Capacity(lvl, difficulty)
	}
	if currentXP < 0 {
		currentXP = 0
	}

	return lvl, currentXP
}
