// Package progression converts completed work into character advancement:
// leveling curves, reward multipliers, boss damage and titles. Every function
// is pure and safe for concurrent use.
package progression

import (
	"math"
)

var defaults = DefaultRules()

// XPForLevel returns the total XP needed to reach level on the character track.
func XPForLevel(level int) int64 {
	return defaults.Character.XPForLevel(level)
}

// XPForNextLevel returns XPForLevel(level + 1).
func XPForNextLevel(level int) int64 {
	return defaults.Character.XPForNextLevel(level)
}

// LevelFromXP returns the character level for a lifetime XP total.
func LevelFromXP(totalXP int64) int {
	return defaults.Character.LevelFromXP(totalXP)
}

// LevelProgress returns the percentage of the way from level to level+1.
func LevelProgress(currentXP int64, level int) int {
	return defaults.Character.Progress(currentXP, level)
}

// AttributeXPForLevel is XPForLevel for attribute skills.
func AttributeXPForLevel(level int) int64 {
	return defaults.Attribute.XPForLevel(level)
}

// AttributeLevelFromXP is LevelFromXP for attribute skills.
func AttributeLevelFromXP(totalXP int64) int {
	return defaults.Attribute.LevelFromXP(totalXP)
}

// DifficultyMultiplier returns the default reward scale for d.
func DifficultyMultiplier(d Difficulty) float64 {
	return defaults.DifficultyMultiplier(d)
}

// StreakMultiplier returns the default streak bonus for days.
func StreakMultiplier(days int) float64 {
	return defaults.StreakMultiplier(days)
}

// CalculateFinalReward applies difficulty and streak scaling to base.
func CalculateFinalReward(base int, difficulty Difficulty, streakDays int) int {
	return defaults.FinalReward(base, difficulty, streakDays)
}

// TitleForLevel returns the default title for level.
func TitleForLevel(level int) string {
	return defaults.TitleForLevel(level)
}

// CalculateBossDamage apportions bossMaxHP by the task's share of the quest's
// XP. The result is in [0, bossMaxHP]; a zero total deals no damage.
func CalculateBossDamage(taskXP, bossMaxHP, totalTasksXP int) int {
	if totalTasksXP <= 0 || taskXP <= 0 || bossMaxHP <= 0 {
		return 0
	}

	damage := int(math.Floor(float64(bossMaxHP) * float64(taskXP) / float64(totalTasksXP)))
	if damage > bossMaxHP {
		return bossMaxHP
	}
	return damage
}

// ApplyBossDamage moves hp by damage: down when a task is completed, back up
// when it is uncompleted. The result stays within [0, maxHP], so toggling the
// same task twice restores the original value unless a clamp was hit.
func ApplyBossDamage(hp, maxHP, damage int, completed bool) int {
	if completed {
		hp -= damage
	} else {
		hp += damage
	}
	return clamp(hp, 0, maxHP)
}

// ScaleReward floors base * multiplier, never going below zero.
func ScaleReward(base int, multiplier float64) int {
	scaled := math.Floor(float64(base) * multiplier)
	if scaled <= 0 {
		return 0
	}
	return int(scaled)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
