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

// CharacterRepository implements repository.Character
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// GetCharacterByUserID returns the character with its attributes, or nil if none exists
func (r *CharacterRepository) GetCharacterByUserID(ctx context.Context, userID string) (*domain.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1`

	c, err := scanCharacter(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}

	if c.Attributes, err = getAttributes(ctx, r.db, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCharacter inserts a character and its starting attributes in one transaction
func (r *CharacterRepository) CreateCharacter(ctx context.Context, c *domain.Character, attributes []domain.AttributeDefinition) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	c.ID = newID(c.ID)
	query := `
		INSERT INTO characters (id, user_id, name, title, level, current_xp, total_xp, gold, gems,
			hp, max_hp, mana, max_mana, current_streak, longest_streak, last_active_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		c.ID, c.UserID, c.Name, c.Title, c.Level, c.CurrentXP, c.TotalXP, c.Gold, c.Gems,
		c.HP, c.MaxHP, c.Mana, c.MaxMana, c.CurrentStreak, c.LongestStreak, c.LastActiveDate,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertCharacter, err)
	}

	c.Attributes = make([]domain.Attribute, 0, len(attributes))
	for _, def := range attributes {
		attr := domain.Attribute{
			ID:          newID(""),
			CharacterID: c.ID,
			Name:        def.Name,
			DisplayName: def.DisplayName,
			Color:       def.Color,
			Icon:        def.Icon,
			Level:       1,
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO attributes (id, character_id, name, display_name, color, icon, level, current_xp)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, attr.ID, attr.CharacterID, attr.Name, attr.DisplayName, attr.Color, attr.Icon, attr.Level, attr.CurrentXP)
		if err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToInsertAttribute, def.Name, err)
		}
		c.Attributes = append(c.Attributes, attr)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// ResetInactiveStreaks zeroes the current streak of every character last
// active before activeSince. Longest streaks are kept.
func (r *CharacterRepository) ResetInactiveStreaks(ctx context.Context, activeSince time.Time) (int64, error) {
	query := `
		UPDATE characters
		SET current_streak = 0, updated_at = NOW()
		WHERE current_streak > 0 AND last_active_date < $1
	`
	tag, err := r.db.Exec(ctx, query, activeSince)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToResetStreaks, err)
	}
	return tag.RowsAffected(), nil
}

// BeginTx starts a transaction and returns a CharacterTx
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &characterTx{pgTx: pgTx{tx: tx}}, nil
}

// characterTx implements repository.CharacterTx. The quest and reward
// transactions embed it.
type characterTx struct {
	pgTx
}

func (t *characterTx) GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = $1 FOR UPDATE`

	c, err := scanCharacter(t.tx.QueryRow(ctx, query, characterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}

	if c.Attributes, err = getAttributes(ctx, t.tx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (t *characterTx) UpdateCharacter(ctx context.Context, c *domain.Character) error {
	query := `
		UPDATE characters
		SET name = $2, title = $3, level = $4, current_xp = $5, total_xp = $6, gold = $7, gems = $8,
			hp = $9, mana = $10, current_streak = $11, longest_streak = $12, last_active_date = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := t.tx.QueryRow(ctx, query,
		c.ID, c.Name, c.Title, c.Level, c.CurrentXP, c.TotalXP, c.Gold, c.Gems,
		c.HP, c.Mana, c.CurrentStreak, c.LongestStreak, c.LastActiveDate,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCharacter, err)
	}
	return nil
}

func (t *characterTx) GetAttributeForUpdate(ctx context.Context, characterID, name string) (*domain.Attribute, error) {
	query := `SELECT ` + attributeColumns + ` FROM attributes WHERE character_id = $1 AND name = $2 FOR UPDATE`

	var a domain.Attribute
	err := t.tx.QueryRow(ctx, query, characterID, name).Scan(
		&a.ID, &a.CharacterID, &a.Name, &a.DisplayName, &a.Color, &a.Icon, &a.Level, &a.CurrentXP,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAttribute, err)
	}
	return &a, nil
}

func (t *characterTx) UpdateAttribute(ctx context.Context, a *domain.Attribute) error {
	_, err := t.tx.Exec(ctx, `UPDATE attributes SET level = $2, current_xp = $3 WHERE id = $1`,
		a.ID, a.Level, a.CurrentXP)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAttribute, err)
	}
	return nil
}

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var c domain.Character
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Title, &c.Level, &c.CurrentXP, &c.TotalXP, &c.Gold, &c.Gems,
		&c.HP, &c.MaxHP, &c.Mana, &c.MaxMana, &c.CurrentStreak, &c.LongestStreak, &c.LastActiveDate,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func getAttributes(ctx context.Context, q querier, characterID string) ([]domain.Attribute, error) {
	query := `
		SELECT ` + attributeColumns + `
		FROM attributes
		WHERE character_id = $1
		ORDER BY array_position(ARRAY['creativity', 'logic', 'focus', 'communication'], name), name
	`
	rows, err := q.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryAttributes, err)
	}
	defer rows.Close()

	attrs := []domain.Attribute{}
	for rows.Next() {
		var a domain.Attribute
		if err := rows.Scan(&a.ID, &a.CharacterID, &a.Name, &a.DisplayName, &a.Color, &a.Icon, &a.Level, &a.CurrentXP); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryAttributes, err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryAttributes, err)
	}
	return attrs, nil
}
