package repository

import (
	"context"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// Reward defines the interface for reward shop persistence.
// Lookups return (nil, nil) when the row does not exist.
type Reward interface {
	ListActiveRewards(ctx context.Context) ([]domain.Reward, error)
	GetReward(ctx context.Context, rewardID string) (*domain.Reward, error)
	CreateReward(ctx context.Context, reward *domain.Reward) error
	UpdateReward(ctx context.Context, reward *domain.Reward) error
	DeleteReward(ctx context.Context, rewardID string) error
	// GetUsageSince counts redemptions per reward for a character
	GetUsageSince(ctx context.Context, characterID string, since time.Time) (map[string]int, error)
	BeginTx(ctx context.Context) (RewardTx, error)
}

// RewardTx debits gold and records a redemption atomically
type RewardTx interface {
	CharacterTx
	CountRedemptionsSince(ctx context.Context, rewardID, characterID string, since time.Time) (int, error)
	InsertRedemption(ctx context.Context, redemption *domain.RewardRedemption) error
}
