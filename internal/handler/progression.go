package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/TaskQuest_Go/internal/progression"
)

const (
	defaultLevelTableSize = 20
	maxLevelTableSize     = 100
)

// LevelRow is one row of the level threshold table
type LevelRow struct {
	Level     int    `json:"level"`
	XPToReach int64  `json:"xpToReach"`
	XPToNext  int64  `json:"xpToNext"`
	Title     string `json:"title"`
}

// RewardPreview shows how difficulty and streak scale a base reward
type RewardPreview struct {
	Base                 int     `json:"base"`
	Difficulty           string  `json:"difficulty"`
	StreakDays           int     `json:"streakDays"`
	DifficultyMultiplier float64 `json:"difficultyMultiplier"`
	StreakMultiplier     float64 `json:"streakMultiplier"`
	Final                int     `json:"final"`
}

// ProgressionHandlers expose the balance table
type ProgressionHandlers struct {
	rules *progression.Rules
}

// NewProgressionHandlers creates handlers over rules, falling back to the defaults
func NewProgressionHandlers(rules *progression.Rules) *ProgressionHandlers {
	if rules == nil {
		rules = progression.DefaultRules()
	}
	return &ProgressionHandlers{rules: rules}
}

// HandleLevels returns XP thresholds and titles for levels 1..maxLevel
// @Summary Level table
// @Tags progression
// @Produce json
// @Param maxLevel query int false "Last level to list (default 20, max 100)"
// @Success 200 {array} LevelRow
// @Failure 400 {object} ErrorResponse
// @Router /progression/levels [get]
func (h *ProgressionHandlers) HandleLevels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxLevel, ok := GetIntQueryParam(r, w, "maxLevel", defaultLevelTableSize)
		if !ok {
			return
		}
		if maxLevel < 1 || maxLevel > maxLevelTableSize {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, "maxLevel"))
			return
		}

		rows := make([]LevelRow, 0, maxLevel)
		for level := 1; level <= maxLevel; level++ {
			rows = append(rows, LevelRow{
				Level:     level,
				XPToReach: h.rules.Character.XPForLevel(level),
				XPToNext:  h.rules.Character.XPForNextLevel(level),
				Title:     h.rules.TitleForLevel(level),
			})
		}
		respondJSON(w, http.StatusOK, rows)
	}
}

// HandleRewardPreview computes the scaled reward for a base amount
// @Summary Reward preview
// @Tags progression
// @Produce json
// @Param base query int true "Base reward"
// @Param difficulty query string false "Difficulty tier (default NORMAL)"
// @Param streak query int false "Streak days"
// @Success 200 {object} RewardPreview
// @Failure 400 {object} ErrorResponse
// @Router /progression/reward [get]
func (h *ProgressionHandlers) HandleRewardPreview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base, ok := GetIntQueryParam(r, w, "base", 0)
		if !ok {
			return
		}
		streak, ok := GetIntQueryParam(r, w, "streak", 0)
		if !ok {
			return
		}
		if base < 0 || streak < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgNegativeQueryParam)
			return
		}

		difficulty := progression.Difficulty(
			GetOptionalQueryParam(r, "difficulty", string(progression.DifficultyNormal))).Normalize()

		respondJSON(w, http.StatusOK, RewardPreview{
			Base:                 base,
			Difficulty:           string(difficulty),
			StreakDays:           streak,
			DifficultyMultiplier: h.rules.DifficultyMultiplier(difficulty),
			StreakMultiplier:     h.rules.StreakMultiplier(streak),
			Final:                h.rules.FinalReward(base, difficulty, streak),
		})
	}
}
