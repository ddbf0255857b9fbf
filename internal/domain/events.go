package domain

// Event type constants used for event bus subscriptions and metrics.
//
// Event types follow the pattern: <entity>.<action> (e.g., "task.completed")
const (
	// EventTypeTaskCompleted is published when a task is checked off
	EventTypeTaskCompleted = "task.completed"

	// EventTypeTaskUncompleted is published when a completed task is unchecked
	EventTypeTaskUncompleted = "task.uncompleted"

	// EventTypeLevelUp is published when a character's level increases
	EventTypeLevelUp = "character.level_up"

	// EventTypeQuestCompleted is published when the last task of a quest is completed
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeBossDefeated is published when a boss quest's HP reaches zero
	EventTypeBossDefeated = "boss.defeated"

	// EventTypeRewardRedeemed is published when gold is spent on a reward
	EventTypeRewardRedeemed = "reward.redeemed"

	// EventTypeStreakReset is published when the streak worker clears inactive streaks
	EventTypeStreakReset = "streak.reset"
)
