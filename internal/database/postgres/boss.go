package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// BossRepository implements repository.Boss
type BossRepository struct {
	db *pgxpool.Pool
}

// NewBossRepository creates a new BossRepository
func NewBossRepository(db *pgxpool.Pool) *BossRepository {
	return &BossRepository{db: db}
}

// ListBosses returns a character's bosses, most recently first defeated first
func (r *BossRepository) ListBosses(ctx context.Context, characterID string, attemptLimit int) ([]domain.Boss, error) {
	query := `
		SELECT ` + bossColumns + `
		FROM bosses
		WHERE character_id = $1
		ORDER BY first_defeated_at DESC NULLS FIRST, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryBosses, err)
	}
	defer rows.Close()

	bosses := []domain.Boss{}
	for rows.Next() {
		b, err := scanBoss(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryBosses, err)
		}
		bosses = append(bosses, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryBosses, err)
	}
	rows.Close()

	if err := attachAttempts(ctx, r.db, bosses, attemptLimit); err != nil {
		return nil, err
	}
	return bosses, nil
}

// GetBoss returns a boss with up to attemptLimit recent attempts, or nil if it does not exist
func (r *BossRepository) GetBoss(ctx context.Context, bossID string, attemptLimit int) (*domain.Boss, error) {
	b, err := scanBoss(r.db.QueryRow(ctx, `SELECT `+bossColumns+` FROM bosses WHERE id = $1`, bossID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBoss, err)
	}

	bosses := []domain.Boss{*b}
	if err := attachAttempts(ctx, r.db, bosses, attemptLimit); err != nil {
		return nil, err
	}
	return &bosses[0], nil
}

// GetBossByName returns a character's boss by name, or nil if it does not exist
func (r *BossRepository) GetBossByName(ctx context.Context, characterID, name string) (*domain.Boss, error) {
	query := `SELECT ` + bossColumns + ` FROM bosses WHERE character_id = $1 AND name = $2`
	b, err := scanBoss(r.db.QueryRow(ctx, query, characterID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBoss, err)
	}
	return b, nil
}

// CreateBoss inserts a boss. A duplicate name returns domain.ErrBossAlreadyExists.
func (r *BossRepository) CreateBoss(ctx context.Context, b *domain.Boss) error {
	b.ID = newID(b.ID)
	query := `
		INSERT INTO bosses (id, character_id, name, description, difficulty, max_hp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, b.ID, b.CharacterID, b.Name, b.Description, b.Difficulty, b.MaxHP).
		Scan(&b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrBossAlreadyExists, b.Name)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertBoss, err)
	}
	b.Attempts = []domain.BossAttempt{}
	return nil
}

// DeleteBoss removes a boss; its attempts cascade
func (r *BossRepository) DeleteBoss(ctx context.Context, bossID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM bosses WHERE id = $1`, bossID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteBoss, err)
	}
	return nil
}

// BeginTx starts a transaction and returns a BossTx
func (r *BossRepository) BeginTx(ctx context.Context) (repository.BossTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &bossTx{pgTx: pgTx{tx: tx}}, nil
}

// bossTx implements repository.BossTx
type bossTx struct {
	pgTx
}

func (t *bossTx) GetBossForUpdate(ctx context.Context, bossID string) (*domain.Boss, error) {
	b, err := scanBoss(t.tx.QueryRow(ctx, `SELECT `+bossColumns+` FROM bosses WHERE id = $1 FOR UPDATE`, bossID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBoss, err)
	}
	return b, nil
}

func (t *bossTx) UpdateBossRecord(ctx context.Context, b *domain.Boss) error {
	query := `
		UPDATE bosses
		SET total_attempts = $2, total_defeats = $3, best_time = $4,
			first_defeated_at = $5, last_attempted_at = $6
		WHERE id = $1
	`
	_, err := t.tx.Exec(ctx, query,
		b.ID, b.TotalAttempts, b.TotalDefeats, b.BestTime, b.FirstDefeatedAt, b.LastAttemptedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBossRecord, err)
	}
	return nil
}

func (t *bossTx) InsertBossAttempt(ctx context.Context, a *domain.BossAttempt) error {
	a.ID = newID(a.ID)
	query := `
		INSERT INTO boss_attempts (id, boss_id, quest_id, defeated, time_spent, damage_dealt)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := t.tx.QueryRow(ctx, query, a.ID, a.BossID, a.QuestID, a.Defeated, a.TimeSpent, a.DamageDealt).
		Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertBossAttempt, err)
	}
	return nil
}

// attachAttempts loads each boss's most recent attempts in one query.
// limit <= 0 loads every attempt.
func attachAttempts(ctx context.Context, db querier, bosses []domain.Boss, limit int) error {
	if len(bosses) == 0 {
		return nil
	}

	ids := make([]string, len(bosses))
	index := make(map[string]int, len(bosses))
	for i := range bosses {
		ids[i] = bosses[i].ID
		index[bosses[i].ID] = i
		bosses[i].Attempts = []domain.BossAttempt{}
	}

	query := `
		SELECT ` + bossAttemptColumns + `
		FROM (
			SELECT *, ROW_NUMBER() OVER (PARTITION BY boss_id ORDER BY created_at DESC) AS rn
			FROM boss_attempts
			WHERE boss_id = ANY($1)
		) ranked
		WHERE $2 <= 0 OR rn <= $2
		ORDER BY created_at DESC
	`
	rows, err := db.Query(ctx, query, ids, limit)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQueryBossAttempts, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.BossAttempt
		if err := rows.Scan(&a.ID, &a.BossID, &a.QuestID, &a.Defeated, &a.TimeSpent, &a.DamageDealt, &a.CreatedAt); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToQueryBossAttempts, err)
		}
		if i, ok := index[a.BossID]; ok {
			bosses[i].Attempts = append(bosses[i].Attempts, a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQueryBossAttempts, err)
	}
	return nil
}

func scanBoss(row pgx.Row) (*domain.Boss, error) {
	var b domain.Boss
	err := row.Scan(
		&b.ID, &b.CharacterID, &b.Name, &b.Description, &b.Difficulty, &b.MaxHP, &b.TotalAttempts,
		&b.TotalDefeats, &b.BestTime, &b.FirstDefeatedAt, &b.LastAttemptedAt, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
