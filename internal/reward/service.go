package reward

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/concurrency"
	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/logger"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// CharacterProvider resolves the acting character and drops its cached
// snapshot after a write
type CharacterProvider interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Character, error)
	Invalidate(userID string)
}

// Service defines the interface for the reward shop
type Service interface {
	ListRewards(ctx context.Context, userID string) ([]domain.Reward, error)
	GetReward(ctx context.Context, rewardID string) (*domain.Reward, error)
	CreateReward(ctx context.Context, input domain.CreateRewardInput) (*domain.Reward, error)
	UpdateReward(ctx context.Context, rewardID string, update domain.RewardUpdate) (*domain.Reward, error)
	DeleteReward(ctx context.Context, rewardID string) error
	Redeem(ctx context.Context, userID, rewardID string) (*domain.RedeemResult, error)
}

type service struct {
	repo       repository.Reward
	characters CharacterProvider
	locks      *concurrency.LockManager
	publisher  event.Publisher
	now        func() time.Time
}

// NewService creates a reward shop service. A nil publisher disables events.
func NewService(repo repository.Reward, characters CharacterProvider, locks *concurrency.LockManager, publisher event.Publisher) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:       repo,
		characters: characters,
		locks:      locks,
		publisher:  publisher,
		now:        time.Now,
	}
}

// startOfDay is local midnight; daily limits follow the server's calendar day
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ListRewards returns the active rewards annotated with today's usage for
// the character
func (s *service) ListRewards(ctx context.Context, userID string) ([]domain.Reward, error) {
	c, err := s.characters.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}

	rewards, err := s.repo.ListActiveRewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListRewardsFailed, err)
	}

	usage, err := s.repo.GetUsageSince(ctx, c.ID, startOfDay(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUsageFailed, err)
	}

	out := make([]domain.Reward, 0, len(rewards))
	for _, r := range rewards {
		r.ApplyUsage(usage[r.ID])
		out = append(out, r)
	}
	return out, nil
}

func (s *service) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	r, err := s.repo.GetReward(ctx, rewardID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetRewardFailed, err)
	}
	if r == nil {
		return nil, domain.ErrRewardNotFound
	}
	return r, nil
}

// CreateReward adds a reward to the shop. Icon and category fall back to
// the defaults and new rewards start active.
func (s *service) CreateReward(ctx context.Context, input domain.CreateRewardInput) (*domain.Reward, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNameRequired)
	}
	if input.GoldCost <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgCostRequired)
	}
	if input.DailyLimit != nil && *input.DailyLimit < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidDailyCap)
	}

	r := &domain.Reward{
		Name:        name,
		Description: input.Description,
		Icon:        strings.TrimSpace(input.Icon),
		GoldCost:    input.GoldCost,
		Category:    strings.ToUpper(strings.TrimSpace(input.Category)),
		DailyLimit:  input.DailyLimit,
		IsActive:    true,
	}
	if r.Icon == "" {
		r.Icon = domain.DefaultRewardIcon
	}
	if r.Category == "" {
		r.Category = domain.DefaultRewardCategory
	}
	if !validCategory(r.Category) {
		return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgInvalidCategory, r.Category)
	}

	if err := s.repo.CreateReward(ctx, r); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateRewardFailed, err)
	}
	r.ApplyUsage(0)

	logger.FromContext(ctx).Info(LogMsgRewardCreated, "reward_id", r.ID, "name", r.Name, "gold_cost", r.GoldCost)
	return r, nil
}

// UpdateReward applies the fields present in update
func (s *service) UpdateReward(ctx context.Context, rewardID string, update domain.RewardUpdate) (*domain.Reward, error) {
	r, err := s.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNameRequired)
		}
		r.Name = name
	}
	if update.Description != nil {
		r.Description = update.Description
	}
	if update.Icon != nil && strings.TrimSpace(*update.Icon) != "" {
		r.Icon = strings.TrimSpace(*update.Icon)
	}
	if update.GoldCost != nil {
		if *update.GoldCost <= 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgCostRequired)
		}
		r.GoldCost = *update.GoldCost
	}
	if update.Category != nil {
		category := strings.ToUpper(strings.TrimSpace(*update.Category))
		if !validCategory(category) {
			return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgInvalidCategory, category)
		}
		r.Category = category
	}
	if update.DailyLimit != nil {
		switch {
		case *update.DailyLimit < 0:
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidDailyCap)
		case *update.DailyLimit == 0:
			r.DailyLimit = nil
		default:
			r.DailyLimit = update.DailyLimit
		}
	}
	if update.IsActive != nil {
		r.IsActive = *update.IsActive
	}

	if err := s.repo.UpdateReward(ctx, r); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateRewardFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgRewardUpdated, "reward_id", r.ID)
	return r, nil
}

func (s *service) DeleteReward(ctx context.Context, rewardID string) error {
	if _, err := s.GetReward(ctx, rewardID); err != nil {
		return err
	}
	if err := s.repo.DeleteReward(ctx, rewardID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeleteRewardFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgRewardDeleted, "reward_id", rewardID)
	return nil
}

// Redeem spends gold on a reward. The daily limit check, the gold debit and
// the redemption row share one transaction under the character's lock.
func (s *service) Redeem(ctx context.Context, userID, rewardID string) (*domain.RedeemResult, error) {
	actor, err := s.characters.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}

	unlock := s.locks.Lock(actor.ID)
	defer unlock()

	r, err := s.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, domain.ErrRewardInactive
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	now := s.now()
	used, err := tx.CountRedemptionsSince(ctx, r.ID, actor.ID, startOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUsageFailed, err)
	}
	if r.DailyLimit != nil && *r.DailyLimit > 0 && used >= *r.DailyLimit {
		return nil, domain.ErrDailyLimitReached
	}

	c, err := tx.GetCharacterForUpdate(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}
	if c == nil {
		return nil, domain.ErrCharacterNotFound
	}
	if c.Gold < r.GoldCost {
		return nil, fmt.Errorf("%w: "+ErrMsgGoldShortfallFmt, domain.ErrInsufficientGold, r.GoldCost, c.Gold)
	}

	c.Gold -= r.GoldCost
	if err := tx.UpdateCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRedeemFailed, err)
	}

	redemption := &domain.RewardRedemption{
		RewardID:    r.ID,
		CharacterID: c.ID,
		GoldSpent:   r.GoldCost,
	}
	if err := tx.InsertRedemption(ctx, redemption); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRedeemFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}
	s.characters.Invalidate(userID)

	logger.FromContext(ctx).Info(LogMsgRewardRedeemed,
		"reward_id", r.ID,
		"character_id", c.ID,
		"gold_spent", r.GoldCost,
		"gold_left", c.Gold)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewRewardRedeemedEvent(c.ID, r, r.GoldCost))
	}

	r.ApplyUsage(used + 1)
	return &domain.RedeemResult{
		Redemption: *redemption,
		Reward:     *r,
		Gold:       c.Gold,
	}, nil
}
