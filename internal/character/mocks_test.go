package character

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// MockRepository implements repository.Character for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCharacterByUserID(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockRepository) CreateCharacter(ctx context.Context, c *domain.Character, attributes []domain.AttributeDefinition) error {
	args := m.Called(ctx, c, attributes)
	return args.Error(0)
}

func (m *MockRepository) ResetInactiveStreaks(ctx context.Context, activeSince time.Time) (int64, error) {
	args := m.Called(ctx, activeSince)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CharacterTx), args.Error(1)
}

// MockTx implements repository.CharacterTx for testing
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

func (m *MockTx) UpdateCharacter(ctx context.Context, c *domain.Character) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// recordingPublisher captures events synchronously
type recordingPublisher struct {
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.events = append(p.events, evt)
}
