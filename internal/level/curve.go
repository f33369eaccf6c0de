package level

import "math"

// Info describes where a user sits on the level curve.
type Info struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	Badge       string `json:"badge"`
	NextLevelXP int64  `json:"next_level_xp"`
	Progress    int    `json:"progress"`
}

type titleBand struct {
	minLevel int
	title    string
	badge    string
}

// Title bands are inclusive lower bounds, checked highest first.
var titleBands = []titleBand{
	{100, "master", "👑"},
	{80, "transcendent", "💎"},
	{70, "conqueror", "🌟"},
	{40, "navigator", "⚡"},
	{20, "pioneer", "🔥"},
	{1, "explorer", "🌱"},
}

// RequirementFor returns the XP needed to complete the given level.
func RequirementFor(lvl int) int64 {
	return int64(math.Floor(BaseLevelXP * math.Pow(CurveGrowth, float64(lvl-1))))
}

// FromXP maps cumulative XP to level info. It is pure and total: any
// non-negative input yields a result, negative input is treated as zero.
func FromXP(totalXP int64) Info {
	if totalXP < 0 {
		totalXP = 0
	}

	lvl := 1
	remaining := totalXP
	for lvl < MaxLevel {
		required := RequirementFor(lvl)
		if remaining < required {
			title, badge := titleFor(lvl)
			return Info{
				Level:       lvl,
				Title:       title,
				Badge:       badge,
				NextLevelXP: required,
				Progress:    int(100 * remaining / required),
			}
		}
		remaining -= required
		lvl++
	}

	// Level cap: surplus XP is discarded.
	title, badge := titleFor(MaxLevel)
	return Info{
		Level:       MaxLevel,
		Title:       title,
		Badge:       badge,
		NextLevelXP: 0,
		Progress:    100,
	}
}

func titleFor(lvl int) (string, string) {
	for _, band := range titleBands {
		if lvl >= band.minLevel {
			return band.title, band.badge
		}
	}
	last := titleBands[len(titleBands)-1]
	return last.title, last.badge
}
