package boss

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// MockRepository implements repository.Boss for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListBosses(ctx context.Context, characterID string, attemptLimit int) ([]domain.Boss, error) {
	args := m.Called(ctx, characterID, attemptLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Boss), args.Error(1)
}

func (m *MockRepository) GetBoss(ctx context.Context, bossID string, attemptLimit int) (*domain.Boss, error) {
	args := m.Called(ctx, bossID, attemptLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boss), args.Error(1)
}

func (m *MockRepository) GetBossByName(ctx context.Context, characterID, name string) (*domain.Boss, error) {
	args := m.Called(ctx, characterID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boss), args.Error(1)
}

func (m *MockRepository) CreateBoss(ctx context.Context, b *domain.Boss) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) DeleteBoss(ctx context.Context, bossID string) error {
	args := m.Called(ctx, bossID)
	return args.Error(0)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.BossTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.BossTx), args.Error(1)
}

// MockTx implements repository.BossTx for testing
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

func (m *MockTx) GetBossForUpdate(ctx context.Context, bossID string) (*domain.Boss, error) {
	args := m.Called(ctx, bossID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boss), args.Error(1)
}

func (m *MockTx) UpdateBossRecord(ctx context.Context, b *domain.Boss) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockTx) InsertBossAttempt(ctx context.Context, a *domain.BossAttempt) error {
	args := m.Called(ctx, a)
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
