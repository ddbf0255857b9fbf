package domain

import "time"

// Boss is a recurring big goal the character fights through boss quests.
type Boss struct {
	ID              string        `json:"id"`
	CharacterID     string        `json:"characterId"`
	Name            string        `json:"name"`
	Description     *string       `json:"description,omitempty"`
	Difficulty      string        `json:"difficulty"`
	MaxHP           int           `json:"maxHp"`
	TotalAttempts   int           `json:"totalAttempts"`
	TotalDefeats    int           `json:"totalDefeats"`
	BestTime        *int          `json:"bestTime,omitempty"`
	FirstDefeatedAt *time.Time    `json:"firstDefeatedAt,omitempty"`
	LastAttemptedAt *time.Time    `json:"lastAttemptedAt,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	Attempts        []BossAttempt `json:"attempts"`
}

// BossAttempt records one fight against a boss. TimeSpent is in minutes.
type BossAttempt struct {
	ID          string    `json:"id"`
	BossID      string    `json:"bossId"`
	QuestID     *string   `json:"questId,omitempty"`
	Defeated    bool      `json:"defeated"`
	TimeSpent   *int      `json:"timeSpent,omitempty"`
	DamageDealt *int      `json:"damageDealt,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateBossInput describes a new boss.
type CreateBossInput struct {
	Name        string
	Description *string
	Difficulty  string
	MaxHP       int
}

// BossAttemptInput records the outcome of a fight.
type BossAttemptInput struct {
	Defeated    bool
	TimeSpent   *int
	DamageDealt *int
	QuestID     *string
}

// RecentBossAttempts is how many attempts are listed with each boss.
const RecentBossAttempts = 5
