package quest

// Error messages
const (
	ErrMsgListQuestsFailed   = "failed to list quests"
	ErrMsgGetQuestFailed     = "failed to get quest"
	ErrMsgCreateQuestFailed  = "failed to create quest"
	ErrMsgUpdateQuestFailed  = "failed to update quest"
	ErrMsgDeleteQuestFailed  = "failed to delete quest"
	ErrMsgGetHistoryFailed   = "failed to get quest history"
	ErrMsgGetTaskFailed      = "failed to get task"
	ErrMsgAddTaskFailed      = "failed to add task"
	ErrMsgUpdateTaskFailed   = "failed to update task"
	ErrMsgDeleteTaskFailed   = "failed to delete task"
	ErrMsgGetCharacterFailed = "failed to get character"
	ErrMsgBeginTxFailed      = "failed to begin transaction"
	ErrMsgCommitTxFailed     = "failed to commit transaction"
	ErrMsgToggleFailed       = "failed to toggle task"

	ErrMsgTitleRequired       = "title is required"
	ErrMsgUnknownAttribute    = "unknown attribute"
	ErrMsgCompletedTaskReward = "rewards of a completed task cannot change"
)

// Log messages
const (
	LogMsgQuestCreated       = "Quest created"
	LogMsgQuestUpdated       = "Quest updated"
	LogMsgQuestDeleted       = "Quest deleted"
	LogMsgTaskAdded          = "Task added"
	LogMsgTaskUpdated        = "Task updated"
	LogMsgTaskDeleted        = "Task deleted"
	LogMsgTaskToggled        = "Task toggled"
	LogMsgQuestCompleted     = "Quest completed"
	LogMsgQuestReactivated   = "Quest reactivated"
	LogMsgBossDefeated       = "Boss defeated"
	LogMsgAttributeMissing   = "Task boosts an attribute the character does not have"
	LogMsgCharacterLeveledUp = "Character leveled up"
)
