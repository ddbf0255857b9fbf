package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/TaskQuest_Go/internal/character"
	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

// MockCharacterService mocks character.Service
type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) GetOrCreate(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) Update(ctx context.Context, userID string, update domain.CharacterUpdate) (*domain.CharacterUpdateResult, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterUpdateResult), args.Error(1)
}

func (m *MockCharacterService) Snapshot(ctx context.Context, userID string) (*domain.CharacterSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterSnapshot), args.Error(1)
}

func (m *MockCharacterService) Invalidate(userID string) {
	m.Called(userID)
}

func (m *MockCharacterService) GetCacheStats() character.CacheStats {
	args := m.Called()
	return args.Get(0).(character.CacheStats)
}

// MockQuestService mocks quest.Service
type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) ListQuests(ctx context.Context, userID string, filter domain.QuestFilter) ([]domain.Quest, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockQuestService) GetQuest(ctx context.Context, userID, questID string) (*domain.Quest, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockQuestService) CreateQuest(ctx context.Context, userID string, input domain.CreateQuestInput) (*domain.Quest, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockQuestService) UpdateQuest(ctx context.Context, userID, questID string, update domain.QuestUpdate) (*domain.Quest, error) {
	args := m.Called(ctx, userID, questID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockQuestService) DeleteQuest(ctx context.Context, userID, questID string) error {
	args := m.Called(ctx, userID, questID)
	return args.Error(0)
}

func (m *MockQuestService) History(ctx context.Context, userID string, limit, offset int) (*domain.QuestHistory, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestHistory), args.Error(1)
}

func (m *MockQuestService) AddTask(ctx context.Context, userID, questID string, input domain.NewTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, userID, questID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockQuestService) UpdateTask(ctx context.Context, userID, taskID string, update domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, userID, taskID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockQuestService) DeleteTask(ctx context.Context, userID, taskID string) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

func (m *MockQuestService) ToggleTask(ctx context.Context, userID, taskID string) (*domain.ToggleResult, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToggleResult), args.Error(1)
}

// MockBossService mocks boss.Service
type MockBossService struct {
	mock.Mock
}

func (m *MockBossService) ListBosses(ctx context.Context, userID string) ([]domain.Boss, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Boss), args.Error(1)
}

func (m *MockBossService) GetBoss(ctx context.Context, userID, bossID string) (*domain.Boss, error) {
	args := m.Called(ctx, userID, bossID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boss), args.Error(1)
}

func (m *MockBossService) CreateBoss(ctx context.Context, userID string, input domain.CreateBossInput) (*domain.Boss, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boss), args.Error(1)
}

func (m *MockBossService) RecordAttempt(ctx context.Context, userID, bossID string, input domain.BossAttemptInput) (*domain.Boss, *domain.BossAttempt, error) {
	args := m.Called(ctx, userID, bossID, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Boss), args.Get(1).(*domain.BossAttempt), args.Error(2)
}

func (m *MockBossService) DeleteBoss(ctx context.Context, userID, bossID string) error {
	args := m.Called(ctx, userID, bossID)
	return args.Error(0)
}

// MockRewardService mocks reward.Service
type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) ListRewards(ctx context.Context, userID string) ([]domain.Reward, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reward), args.Error(1)
}

func (m *MockRewardService) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	args := m.Called(ctx, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}

func (m *MockRewardService) CreateReward(ctx context.Context, input domain.CreateRewardInput) (*domain.Reward, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}

func (m *MockRewardService) UpdateReward(ctx context.Context, rewardID string, update domain.RewardUpdate) (*domain.Reward, error) {
	args := m.Called(ctx, rewardID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}

func (m *MockRewardService) DeleteReward(ctx context.Context, rewardID string) error {
	args := m.Called(ctx, rewardID)
	return args.Error(0)
}

func (m *MockRewardService) Redeem(ctx context.Context, userID, rewardID string) (*domain.RedeemResult, error) {
	args := m.Called(ctx, userID, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedeemResult), args.Error(1)
}

// MockStatsService mocks stats.Service
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context, userID string) (*domain.Stats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}
