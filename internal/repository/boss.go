package repository

import (
	"context"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// Boss defines the interface for boss persistence.
// attemptLimit caps the attempts loaded per boss; zero loads all of them.
type Boss interface {
	ListBosses(ctx context.Context, characterID string, attemptLimit int) ([]domain.Boss, error)
	GetBoss(ctx context.Context, bossID string, attemptLimit int) (*domain.Boss, error)
	GetBossByName(ctx context.Context, characterID, name string) (*domain.Boss, error)
	CreateBoss(ctx context.Context, boss *domain.Boss) error
	DeleteBoss(ctx context.Context, bossID string) error
	BeginTx(ctx context.Context) (BossTx, error)
}

// BossTx records an attempt against a locked boss row
type BossTx interface {
	Tx
	GetBossForUpdate(ctx context.Context, bossID string) (*domain.Boss, error)
	UpdateBossRecord(ctx context.Context, boss *domain.Boss) error
	InsertBossAttempt(ctx context.Context, attempt *domain.BossAttempt) error
}
