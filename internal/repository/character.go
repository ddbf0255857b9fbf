package repository

import (
	"context"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// Character defines the interface for character persistence.
// Lookups return (nil, nil) when the row does not exist.
type Character interface {
	GetCharacterByUserID(ctx context.Context, userID string) (*domain.Character, error)
	CreateCharacter(ctx context.Context, character *domain.Character, attributes []domain.AttributeDefinition) error
	ResetInactiveStreaks(ctx context.Context, activeSince time.Time) (int64, error)
	BeginTx(ctx context.Context) (CharacterTx, error)
}

// CharacterTx locks and rewrites character state
type CharacterTx interface {
	Tx
	GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character *domain.Character) error
}
