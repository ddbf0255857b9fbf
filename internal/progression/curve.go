package progression

import (
	"math"
)

// Curve is a polynomial leveling track. Reaching level L requires
// floor(Base * (L-1)^Growth) cumulative XP; level 1 is free.
type Curve struct {
	Base   float64 `yaml:"base" json:"base"`
	Growth float64 `yaml:"growth" json:"growth"`
}

// maxXP is the largest threshold representable as int64 after flooring.
var maxXP = float64(math.MaxInt64)

// XPForLevel returns the cumulative XP needed to reach level.
func (c Curve) XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}

	xp := math.Floor(c.Base * math.Pow(float64(level-1), c.Growth))
	if xp >= maxXP {
		return math.MaxInt64
	}
	if xp < 0 {
		return 0
	}
	return int64(xp)
}

// XPForNextLevel returns the threshold of the level after level.
func (c Curve) XPForNextLevel(level int) int64 {
	return c.XPForLevel(level + 1)
}

// LevelFromXP returns the highest level whose threshold is <= totalXP.
// Negative XP is treated as zero. Results are capped at MaxLevel, so XP
// beyond XPForLevel(MaxLevel) reports MaxLevel rather than the true level.
func (c Curve) LevelFromXP(totalXP int64) int {
	if totalXP <= 0 || c.Base <= 0 || c.Growth <= 0 {
		return 1
	}

	// Closed-form inverse, then walk to the exact boundary. Float error on the
	// estimate is at most one level either way, so the walks are short.
	estimate := math.Pow(float64(totalXP)/c.Base, 1/c.Growth)
	var level int
	if estimate < float64(MaxLevel) {
		level = int(math.Floor(estimate)) + 1
	} else {
		level = MaxLevel
	}

	for i := 0; i < levelAdjustSteps && level > 1 && c.XPForLevel(level) > totalXP; i++ {
		level--
	}
	for i := 0; i < levelAdjustSteps && level < MaxLevel && c.XPForLevel(level+1) <= totalXP; i++ {
		level++
	}
	return level
}

// Progress reports how far currentXP sits between level and level+1, as a
// whole percentage clamped to [0,100].
func (c Curve) Progress(currentXP int64, level int) int {
	floor := c.XPForLevel(level)
	ceiling := c.XPForLevel(level + 1)
	span := ceiling - floor
	if span <= 0 {
		return 100
	}

	pct := math.Round(100 * float64(currentXP-floor) / float64(span))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}

// validate requires Base >= 1 and Growth >= 1. Together they keep each
// floored threshold at least one XP above the previous, which LevelFromXP's
// short walk from the closed-form estimate depends on.
func (c Curve) validate() error {
	if !(c.Base >= 1) || math.IsInf(c.Base, 0) {
		return errInvalidCurveBase
	}
	if !(c.Growth >= 1) || math.IsInf(c.Growth, 0) {
		return errInvalidCurveGrowth
	}
	return nil
}
