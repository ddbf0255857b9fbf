package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgQuestNotFound     = "quest not found"
	ErrMsgTaskNotFound      = "task not found"
	ErrMsgBossNotFound      = "boss not found"
	ErrMsgRewardNotFound    = "reward not found"
	ErrMsgAttributeNotFound = "attribute not found"

	ErrMsgBossAlreadyExists = "boss already exists"
	ErrMsgQuestCompleted    = "quest is already completed"
	ErrMsgTaskCompleted     = "completed tasks cannot be deleted"
	ErrMsgRewardInactive    = "reward is not active"

	ErrMsgInsufficientGold  = "not enough gold"
	ErrMsgDailyLimitReached = "daily limit reached for this reward"

	ErrMsgInvalidInput     = "invalid input"
	ErrMsgDatabaseError    = "database error"
	ErrMsgDeadlockDetected = "deadlock detected"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrQuestNotFound     = errors.New(ErrMsgQuestNotFound)
	ErrTaskNotFound      = errors.New(ErrMsgTaskNotFound)
	ErrBossNotFound      = errors.New(ErrMsgBossNotFound)
	ErrRewardNotFound    = errors.New(ErrMsgRewardNotFound)
	ErrAttributeNotFound = errors.New(ErrMsgAttributeNotFound)

	ErrBossAlreadyExists = errors.New(ErrMsgBossAlreadyExists)
	ErrQuestCompleted    = errors.New(ErrMsgQuestCompleted)
	ErrTaskCompleted     = errors.New(ErrMsgTaskCompleted)
	ErrRewardInactive    = errors.New(ErrMsgRewardInactive)

	ErrInsufficientGold  = errors.New(ErrMsgInsufficientGold)
	ErrDailyLimitReached = errors.New(ErrMsgDailyLimitReached)

	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)
	ErrDatabaseError    = errors.New(ErrMsgDatabaseError)
	ErrDeadlockDetected = errors.New(ErrMsgDeadlockDetected)
)
