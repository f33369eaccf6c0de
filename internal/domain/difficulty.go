package domain

// Difficulty classifies workspaces, curriculum content and tasks.
// It drives both the workspace level curve and per-action XP multipliers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty bands.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// Multiplier returns the per-action XP multiplier for the difficulty.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyNormal:
		return 1.5
	case DifficultyHard:
		return 2.0
	default:
		return 1.0
	}
}
