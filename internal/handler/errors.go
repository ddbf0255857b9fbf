package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgMissingPathParam      = "Missing id"
	ErrMsgNegativeQueryParam    = "Query parameters must not be negative"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."

	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgQuestNotFoundError     = "Quest not found"
	ErrMsgTaskNotFoundError      = "Task not found"
	ErrMsgBossNotFoundError      = "Boss not found"
	ErrMsgRewardNotFoundError    = "Reward not found"
	ErrMsgAttributeNotFoundError = "Attribute not found"

	ErrMsgBossExistsError     = "A boss with that name already exists"
	ErrMsgQuestCompletedError = "Quest is already completed"
	ErrMsgTaskCompletedError  = "Completed tasks cannot be deleted"
	ErrMsgRewardInactiveError = "Reward is not available"
	ErrMsgNotEnoughGoldError  = "Not enough gold"
	ErrMsgDailyLimitError     = "Daily limit reached for this reward"
	ErrMsgDatabaseUnavailable = "database connection failed"
)

// Success messages for API responses
const (
	MsgQuestDeleted  = "Quest deleted"
	MsgTaskDeleted   = "Task deleted"
	MsgBossDeleted   = "Boss deleted"
	MsgRewardDeleted = "Reward deleted"
)
