package reward

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// MockRepository implements repository.Reward for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListActiveRewards(ctx context.Context) ([]domain.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reward), args.Error(1)
}

func (m *MockRepository) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	args := m.Called(ctx, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}

func (m *MockRepository) CreateReward(ctx context.Context, reward *domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

func (m *MockRepository) UpdateReward(ctx context.Context, reward *domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

func (m *MockRepository) DeleteReward(ctx context.Context, rewardID string) error {
	args := m.Called(ctx, rewardID)
	return args.Error(0)
}

func (m *MockRepository) GetUsageSince(ctx context.Context, characterID string, since time.Time) (map[string]int, error) {
	args := m.Called(ctx, characterID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.RewardTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.RewardTx), args.Error(1)
}

// MockTx implements repository.RewardTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockTx) UpdateCharacter(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockTx) CountRedemptionsSince(ctx context.Context, rewardID, characterID string, since time.Time) (int, error) {
	args := m.Called(ctx, rewardID, characterID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockTx) InsertRedemption(ctx context.Context, redemption *domain.RewardRedemption) error {
	args := m.Called(ctx, redemption)
	return args.Error(0)
}

// MockCharacters implements CharacterProvider for testing
type MockCharacters struct {
	mock.Mock
}

func (m *MockCharacters) GetOrCreate(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacters) Invalidate(userID string) {
	m.Called(userID)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}
