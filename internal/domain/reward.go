package domain

import "time"

// Reward is a real-life treat bought with gold.
type Reward struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	GoldCost    int       `json:"goldCost"`
	Category    string    `json:"category"`
	DailyLimit  *int      `json:"dailyLimit,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Derived per request
	TodayUsage int  `json:"todayUsage"`
	CanRedeem  bool `json:"canRedeem"`
}

// ApplyUsage fills the derived usage fields from today's redemption count.
func (r *Reward) ApplyUsage(todayUsage int) {
	r.TodayUsage = todayUsage
	r.CanRedeem = r.DailyLimit == nil || *r.DailyLimit <= 0 || todayUsage < *r.DailyLimit
}

// RewardRedemption is one purchase of a reward.
type RewardRedemption struct {
	ID          string    `json:"id"`
	RewardID    string    `json:"rewardId"`
	CharacterID string    `json:"characterId"`
	GoldSpent   int       `json:"goldSpent"`
	RedeemedAt  time.Time `json:"redeemedAt"`
}

// RedeemResult is the outcome of a redemption.
type RedeemResult struct {
	Redemption RewardRedemption `json:"redemption"`
	Reward     Reward           `json:"reward"`
	Gold       int              `json:"gold"`
}

// CreateRewardInput describes a new reward.
type CreateRewardInput struct {
	Name        string
	Description *string
	Icon        string
	GoldCost    int
	Category    string
	DailyLimit  *int
}

// RewardUpdate is a partial reward update.
type RewardUpdate struct {
	Name        *string
	Description *string
	Icon        *string
	GoldCost    *int
	Category    *string
	DailyLimit  *int
	IsActive    *bool
}

// Reward defaults
const (
	DefaultRewardIcon     = "gift"
	DefaultRewardCategory = "LEISURE"
)
