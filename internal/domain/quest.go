package domain

import "time"

// QuestType categorizes a quest.
type QuestType string

const (
	QuestTypeMain   QuestType = "MAIN"
	QuestTypeSide   QuestType = "SIDE"
	QuestTypeDaily  QuestType = "DAILY"
	QuestTypeWeekly QuestType = "WEEKLY"
	QuestTypeBoss   QuestType = "BOSS"
)

// QuestStatus is the lifecycle state of a quest.
type QuestStatus string

const (
	QuestStatusActive    QuestStatus = "ACTIVE"
	QuestStatusCompleted QuestStatus = "COMPLETED"
	QuestStatusFailed    QuestStatus = "FAILED"
	QuestStatusAbandoned QuestStatus = "ABANDONED"
)

// BillingType says how a quest's client work is charged.
type BillingType string

const (
	BillingFixed  BillingType = "FIXED"
	BillingHourly BillingType = "HOURLY"
)

// Quest is a project made of ordered tasks. XPReward and GoldReward track the
// sum of the task rewards once tasks are edited.
type Quest struct {
	ID           string      `json:"id"`
	CharacterID  string      `json:"characterId"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	Type         QuestType   `json:"type"`
	Difficulty   string      `json:"difficulty"`
	Status       QuestStatus `json:"status"`
	Deadline     *time.Time  `json:"deadline,omitempty"`
	XPReward     int         `json:"xpReward"`
	GoldReward   int         `json:"goldReward"`
	IsDaily      bool        `json:"isDaily"`
	IsBossBattle bool        `json:"isBossBattle"`
	BossName     *string     `json:"bossName,omitempty"`
	BossHP       *int        `json:"bossHp,omitempty"`
	BossMaxHP    *int        `json:"bossMaxHp,omitempty"`

	BillingType    BillingType `json:"billingType"`
	BudgetAmount   *float64    `json:"budgetAmount,omitempty"`
	HourlyRate     *float64    `json:"hourlyRate,omitempty"`
	EstimatedHours *float64    `json:"estimatedHours,omitempty"`
	HoursWorked    float64     `json:"hoursWorked"`
	IsPaid         bool        `json:"isPaid"`
	PaidAt         *time.Time  `json:"paidAt,omitempty"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Tasks       []Task     `json:"tasks"`
}

// Task is the smallest unit of work inside a quest.
type Task struct {
	ID             string     `json:"id"`
	QuestID        string     `json:"questId"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	XPReward       int        `json:"xpReward"`
	GoldReward     int        `json:"goldReward"`
	AttributeBoost *string    `json:"attributeBoost,omitempty"`
	AttributeXP    *int       `json:"attributeXP,omitempty"`
	Order          int        `json:"order"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Quest defaults
const (
	DefaultQuestTaskXP      = 20
	DefaultQuestTaskGold    = 10
	DefaultQuestXPPerTask   = 50
	DefaultQuestGoldPerTask = 20
	DefaultBossHP           = 100
	DefaultAddedTaskXP      = 10
	DefaultAddedTaskGold    = 5
	DefaultAttributeXP      = 5
	DefaultHistoryLimit     = 50
	MaxHistoryLimit         = 200
)

// Regeneration granted by task and quest completion
const (
	TaskCompleteHPRegen    = 5
	TaskCompleteManaRegen  = 3
	QuestCompleteHPBonus   = 15
	QuestCompleteManaBonus = 10
)

// QuestTaskInput is a task created together with its quest. Rewards are
// derived from the quest difficulty.
type QuestTaskInput struct {
	Title          string
	Description    string
	AttributeBoost *string
}

// CreateQuestInput describes a new quest.
type CreateQuestInput struct {
	Title          string
	Description    string
	Type           QuestType
	Difficulty     string
	Deadline       *time.Time
	Tasks          []QuestTaskInput
	IsBossBattle   bool
	BossName       *string
	BossHP         *int
	BillingType    BillingType
	BudgetAmount   *float64
	HourlyRate     *float64
	EstimatedHours *float64
	HoursWorked    *float64
}

// QuestUpdate is a partial quest update.
type QuestUpdate struct {
	Title          *string
	Description    *string
	Status         *QuestStatus
	Deadline       *time.Time
	BillingType    *BillingType
	BudgetAmount   *float64
	HourlyRate     *float64
	EstimatedHours *float64
	HoursWorked    *float64
	IsPaid         *bool
}

// NewTaskInput describes a task appended to an existing quest.
type NewTaskInput struct {
	Title          string
	Description    string
	XPReward       *int
	GoldReward     *int
	AttributeBoost *string
	AttributeXP    *int
}

// TaskUpdate is a partial task update.
type TaskUpdate struct {
	Title          *string
	Description    *string
	XPReward       *int
	GoldReward     *int
	AttributeBoost *string
	AttributeXP    *int
}

// QuestFilter narrows quest listings. An empty Status means every status.
type QuestFilter struct {
	Status QuestStatus
	Type   QuestType
}

// QuestHistory is a page of completed quests.
type QuestHistory struct {
	Quests  []Quest `json:"quests"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	HasMore bool    `json:"hasMore"`
}

// ToggleRewards are the deltas applied to the character by a toggle.
type ToggleRewards struct {
	XP        int `json:"xp"`
	Gold      int `json:"gold"`
	HPRegen   int `json:"hpRegen"`
	ManaRegen int `json:"manaRegen"`
}

// LevelUp reports a level increase caused by a toggle.
type LevelUp struct {
	OldLevel int    `json:"oldLevel"`
	NewLevel int    `json:"newLevel"`
	NewTitle string `json:"newTitle"`
}

// AttributeChange reports an attribute moved by a toggle.
type AttributeChange struct {
	Name     string `json:"name"`
	XPDelta  int    `json:"xpDelta"`
	OldLevel int    `json:"oldLevel"`
	NewLevel int    `json:"newLevel"`
}

// BossDamage reports the boss HP change caused by a toggle.
type BossDamage struct {
	Damage   int  `json:"damage"`
	HP       int  `json:"hp"`
	MaxHP    int  `json:"maxHp"`
	Defeated bool `json:"defeated"`
}

// ToggleResult is the outcome of completing or uncompleting a task.
type ToggleResult struct {
	Task           Task             `json:"task"`
	Character      *Character       `json:"character"`
	Quest          *Quest           `json:"quest"`
	Rewards        ToggleRewards    `json:"rewards"`
	LevelUp        *LevelUp         `json:"levelUp,omitempty"`
	Attribute      *AttributeChange `json:"attribute,omitempty"`
	Boss           *BossDamage      `json:"boss,omitempty"`
	QuestCompleted bool             `json:"questCompleted"`
}
