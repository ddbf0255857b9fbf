package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TaskQuest_Go/internal/database/postgres"
)

// Repositories holds all repository implementations used by the application.
// Concrete types are kept so callers can use them for every narrow interface
// they satisfy (the character repository also resets streaks).
type Repositories struct {
	Character *postgres.CharacterRepository
	Quest     *postgres.QuestRepository
	Boss      *postgres.BossRepository
	Reward    *postgres.RewardRepository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Character: postgres.NewCharacterRepository(dbPool),
		Quest:     postgres.NewQuestRepository(dbPool),
		Boss:      postgres.NewBossRepository(dbPool),
		Reward:    postgres.NewRewardRepository(dbPool),
	}
}
