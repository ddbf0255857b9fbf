package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// RewardRepository implements repository.Reward
type RewardRepository struct {
	db *pgxpool.Pool
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

// ListActiveRewards returns active rewards ordered by category then cost
func (r *RewardRepository) ListActiveRewards(ctx context.Context) ([]domain.Reward, error) {
	query := `
		SELECT ` + rewardColumns + `
		FROM rewards
		WHERE is_active
		ORDER BY category ASC, gold_cost ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRewards, err)
	}
	defer rows.Close()

	rewards := []domain.Reward{}
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRewards, err)
		}
		rewards = append(rewards, *rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRewards, err)
	}
	return rewards, nil
}

// GetReward returns a reward, or nil if it does not exist
func (r *RewardRepository) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	rw, err := scanReward(r.db.QueryRow(ctx, `SELECT `+rewardColumns+` FROM rewards WHERE id = $1`, rewardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetReward, err)
	}
	return rw, nil
}

// CreateReward inserts a reward
func (r *RewardRepository) CreateReward(ctx context.Context, rw *domain.Reward) error {
	rw.ID = newID(rw.ID)
	query := `
		INSERT INTO rewards (id, name, description, icon, gold_cost, category, daily_limit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		rw.ID, rw.Name, rw.Description, rw.Icon, rw.GoldCost, rw.Category, rw.DailyLimit, rw.IsActive,
	).Scan(&rw.CreatedAt, &rw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertReward, err)
	}
	return nil
}

// UpdateReward writes every editable reward field
func (r *RewardRepository) UpdateReward(ctx context.Context, rw *domain.Reward) error {
	query := `
		UPDATE rewards
		SET name = $2, description = $3, icon = $4, gold_cost = $5, category = $6,
			daily_limit = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		rw.ID, rw.Name, rw.Description, rw.Icon, rw.GoldCost, rw.Category, rw.DailyLimit, rw.IsActive,
	).Scan(&rw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateReward, err)
	}
	return nil
}

// DeleteReward removes a reward; its redemptions cascade
func (r *RewardRepository) DeleteReward(ctx context.Context, rewardID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM rewards WHERE id = $1`, rewardID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteReward, err)
	}
	return nil
}

// GetUsageSince counts a character's redemptions per reward since a point in time
func (r *RewardRepository) GetUsageSince(ctx context.Context, characterID string, since time.Time) (map[string]int, error) {
	query := `
		SELECT reward_id, COUNT(*)
		FROM reward_redemptions
		WHERE character_id = $1 AND redeemed_at >= $2
		GROUP BY reward_id
	`
	rows, err := r.db.Query(ctx, query, characterID, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRewardUsage, err)
	}
	defer rows.Close()

	usage := make(map[string]int)
	for rows.Next() {
		var rewardID string
		var count int
		if err := rows.Scan(&rewardID, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRewardUsage, err)
		}
		usage[rewardID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRewardUsage, err)
	}
	return usage, nil
}

// BeginTx starts a transaction and returns a RewardTx
func (r *RewardRepository) BeginTx(ctx context.Context) (repository.RewardTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &rewardTx{characterTx: characterTx{pgTx: pgTx{tx: tx}}}, nil
}

// rewardTx implements repository.RewardTx
type rewardTx struct {
	characterTx
}

func (t *rewardTx) CountRedemptionsSince(ctx context.Context, rewardID, characterID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reward_redemptions
		WHERE reward_id = $1 AND character_id = $2 AND redeemed_at >= $3
	`
	var count int
	if err := t.tx.QueryRow(ctx, query, rewardID, characterID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRewardUsage, err)
	}
	return count, nil
}

func (t *rewardTx) InsertRedemption(ctx context.Context, rd *domain.RewardRedemption) error {
	rd.ID = newID(rd.ID)
	query := `
		INSERT INTO reward_redemptions (id, reward_id, character_id, gold_spent)
		VALUES ($1, $2, $3, $4)
		RETURNING redeemed_at
	`
	err := t.tx.QueryRow(ctx, query, rd.ID, rd.RewardID, rd.CharacterID, rd.GoldSpent).Scan(&rd.RedeemedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRedemption, err)
	}
	return nil
}

func scanReward(row pgx.Row) (*domain.Reward, error) {
	var rw domain.Reward
	err := row.Scan(
		&rw.ID, &rw.Name, &rw.Description, &rw.Icon, &rw.GoldCost, &rw.Category, &rw.DailyLimit, &rw.IsActive,
		&rw.CreatedAt, &rw.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rw, nil
}
