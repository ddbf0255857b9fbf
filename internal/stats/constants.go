package stats

// Error messages
const (
	ErrMsgGetCharacterFailed = "failed to get character"
	ErrMsgListQuestsFailed   = "failed to list quests"
)

// LogMsgStatsComputed is logged at debug level after each summary
const LogMsgStatsComputed = "Stats computed"

// monthKeyLayout formats the keys of the monthly breakdown
const monthKeyLayout = "2006-01"
