package level

// User level curve. XP to complete level N is BaseLevelXP * CurveGrowth^(N-1).
const (
	BaseLevelXP = 1000
	CurveGrowth = 1.2
	MaxLevel    = 100
)

// Workspace capacity curve. Capacity of level N is
// BaseCapacity * N * difficulty multiplier.
const (
	BaseCapacity = 100
	MinWorkspaceLevel = 1
)
