package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Column lists shared by the scan helpers. Order must match the scan order.
const (
	characterColumns = `id, user_id, name, title, level, current_xp, total_xp, gold, gems,
		hp, max_hp, mana, max_mana, current_streak, longest_streak, last_active_date,
		created_at, updated_at`

	attributeColumns = `id, character_id, name, display_name, color, icon, level, current_xp`

	questColumns = `id, character_id, title, description, type, difficulty, status, deadline,
		xp_reward, gold_reward, is_daily, is_boss_battle, boss_name, boss_hp, boss_max_hp,
		billing_type, budget_amount, hourly_rate, estimated_hours, hours_worked, is_paid, paid_at,
		completed_at, created_at, updated_at`

	taskColumns = `id, quest_id, title, description, xp_reward, gold_reward, attribute_boost,
		attribute_xp, sort_order, completed, completed_at, created_at`

	bossColumns = `id, character_id, name, description, difficulty, max_hp, total_attempts,
		total_defeats, best_time, first_defeated_at, last_attempted_at, created_at`

	bossAttemptColumns = `id, boss_id, quest_id, defeated, time_spent, damage_dealt, created_at`

	rewardColumns = `id, name, description, icon, gold_cost, category, daily_limit, is_active,
		created_at, updated_at`
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Character Operations
const (
	ErrMsgFailedToGetCharacter    = "failed to get character"
	ErrMsgFailedToInsertCharacter = "failed to insert character"
	ErrMsgFailedToUpdateCharacter = "failed to update character"
	ErrMsgFailedToResetStreaks    = "failed to reset inactive streaks"
	ErrMsgFailedToQueryAttributes = "failed to query attributes"
	ErrMsgFailedToInsertAttribute = "failed to insert attribute"
	ErrMsgFailedToGetAttribute    = "failed to get attribute"
	ErrMsgFailedToUpdateAttribute = "failed to update attribute"
)

// Error Messages - Quest Operations
const (
	ErrMsgFailedToQueryQuests         = "failed to query quests"
	ErrMsgFailedToGetQuest            = "failed to get quest"
	ErrMsgFailedToInsertQuest         = "failed to insert quest"
	ErrMsgFailedToUpdateQuest         = "failed to update quest"
	ErrMsgFailedToDeleteQuest         = "failed to delete quest"
	ErrMsgFailedToCountQuests         = "failed to count quests"
	ErrMsgFailedToRecomputeRewards    = "failed to recompute quest rewards"
	ErrMsgFailedToUpdateQuestProgress = "failed to update quest progress"
)

// Error Messages - Task Operations
const (
	ErrMsgFailedToQueryTasks           = "failed to query tasks"
	ErrMsgFailedToGetTask              = "failed to get task"
	ErrMsgFailedToInsertTask           = "failed to insert task"
	ErrMsgFailedToUpdateTask           = "failed to update task"
	ErrMsgFailedToDeleteTask           = "failed to delete task"
	ErrMsgFailedToUpdateTaskCompletion = "failed to update task completion"
	ErrMsgFailedToGetNextTaskOrder     = "failed to get next task order"
)

// Error Messages - Boss Operations
const (
	ErrMsgFailedToQueryBosses       = "failed to query bosses"
	ErrMsgFailedToGetBoss           = "failed to get boss"
	ErrMsgFailedToInsertBoss        = "failed to insert boss"
	ErrMsgFailedToDeleteBoss        = "failed to delete boss"
	ErrMsgFailedToUpdateBossRecord  = "failed to update boss record"
	ErrMsgFailedToQueryBossAttempts = "failed to query boss attempts"
	ErrMsgFailedToInsertBossAttempt = "failed to insert boss attempt"
)

// Error Messages - Reward Operations
const (
	ErrMsgFailedToQueryRewards     = "failed to query rewards"
	ErrMsgFailedToGetReward        = "failed to get reward"
	ErrMsgFailedToInsertReward     = "failed to insert reward"
	ErrMsgFailedToUpdateReward     = "failed to update reward"
	ErrMsgFailedToDeleteReward     = "failed to delete reward"
	ErrMsgFailedToQueryRewardUsage = "failed to query reward usage"
	ErrMsgFailedToInsertRedemption = "failed to insert redemption"
)

// Log Messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)
