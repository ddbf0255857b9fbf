package character

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/concurrency"
	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/logger"
	"github.com/osse101/TaskQuest_Go/internal/progression"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// Service defines the interface for character operations
type Service interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Character, error)
	Update(ctx context.Context, userID string, update domain.CharacterUpdate) (*domain.CharacterUpdateResult, error)
	Snapshot(ctx context.Context, userID string) (*domain.CharacterSnapshot, error)
	Invalidate(userID string)
	GetCacheStats() CacheStats
}

type service struct {
	repo      repository.Character
	rules     *progression.Rules
	locks     *concurrency.LockManager
	publisher event.Publisher
	cache     *snapshotCache
	now       func() time.Time
}

// NewService creates a character service. A nil rules table uses the defaults;
// a nil publisher disables level-up events.
func NewService(repo repository.Character, rules *progression.Rules, locks *concurrency.LockManager, publisher event.Publisher, cacheConfig CacheConfig) Service {
	if rules == nil {
		rules = progression.DefaultRules()
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:      repo,
		rules:     rules,
		locks:     locks,
		publisher: publisher,
		cache:     newSnapshotCache(cacheConfig),
		now:       time.Now,
	}
}

// GetOrCreate returns the user's character, creating it with the default
// attributes on first access.
func (s *service) GetOrCreate(ctx context.Context, userID string) (*domain.Character, error) {
	if snap, ok := s.cache.Get(userID); ok {
		return cloneCharacter(snap.Character), nil
	}

	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cloneCharacter(snap.Character), nil
}

// Snapshot returns the character with its derived progression values
func (s *service) Snapshot(ctx context.Context, userID string) (*domain.CharacterSnapshot, error) {
	if snap, ok := s.cache.Get(userID); ok {
		return cloneSnapshot(snap), nil
	}

	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cloneSnapshot(snap), nil
}

// load reads or creates the character and caches its snapshot. The fill is
// dropped if a write invalidated userID while the read was in flight.
func (s *service) load(ctx context.Context, userID string) (*domain.CharacterSnapshot, error) {
	gen := s.cache.Generation(userID)

	c, err := s.repo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}
	if c == nil {
		if c, err = s.create(ctx, userID); err != nil {
			return nil, err
		}
	}

	snap := s.buildSnapshot(c)
	s.cache.SetIfGeneration(userID, gen, snap)
	return snap, nil
}

func (s *service) create(ctx context.Context, userID string) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	// Two first requests can race; the loser re-reads what the winner created
	unlock := s.locks.Lock("user:" + userID)
	defer unlock()

	existing, err := s.repo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}
	if existing != nil {
		return existing, nil
	}

	now := s.now()
	c := &domain.Character{
		UserID:         userID,
		Name:           domain.DefaultCharacterName,
		Title:          s.rules.TitleForLevel(1),
		Level:          1,
		Gold:           domain.DefaultStartingGold,
		Gems:           domain.DefaultStartingGems,
		HP:             domain.DefaultMaxHP,
		MaxHP:          domain.DefaultMaxHP,
		Mana:           domain.DefaultMaxMana,
		MaxMana:        domain.DefaultMaxMana,
		LastActiveDate: now,
	}
	if err := s.repo.CreateCharacter(ctx, c, domain.DefaultAttributes); err != nil {
		existing, getErr := s.repo.GetCharacterByUserID(ctx, userID)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateCharacterFailed, err)
	}

	log.Info(LogMsgCharacterCreated, "user_id", userID, "character_id", c.ID)
	return c, nil
}

// Update applies a partial update under the character's lock
func (s *service) Update(ctx context.Context, userID string, update domain.CharacterUpdate) (*domain.CharacterUpdateResult, error) {
	log := logger.FromContext(ctx)

	current, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(current.ID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	c, err := tx.GetCharacterForUpdate(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}
	if c == nil {
		return nil, domain.ErrCharacterNotFound
	}

	oldLevel := c.Level
	s.apply(c, update)

	if err := tx.UpdateCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateCharacterFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}
	s.Invalidate(userID)

	log.Info(LogMsgCharacterUpdated, "character_id", c.ID, "level", c.Level, "gold", c.Gold)
	result := &domain.CharacterUpdateResult{Character: c}
	if c.Level != oldLevel {
		log.Info(LogMsgLevelChanged, "character_id", c.ID, "old_level", oldLevel, "new_level", c.Level)
	}
	if c.Level > oldLevel {
		result.LevelUp = &domain.LevelUp{OldLevel: oldLevel, NewLevel: c.Level, NewTitle: c.Title}
		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(c.ID, c.Name, oldLevel, c.Level, c.Title))
		}
	}
	return result, nil
}

// apply mutates c with the update. XP, gold and gems are deltas clamped at
// zero; HP and mana are set within [0, max]; level follows total XP.
func (s *service) apply(c *domain.Character, update domain.CharacterUpdate) {
	if update.XP != nil {
		c.TotalXP = max(c.TotalXP+*update.XP, 0)
		c.CurrentXP = max(c.CurrentXP+*update.XP, 0)
		level := s.rules.Character.LevelFromXP(c.TotalXP)
		if level != c.Level {
			c.Level = level
			c.Title = s.rules.TitleForLevel(level)
		}
	}
	if update.Gold != nil {
		c.Gold = max(c.Gold+*update.Gold, 0)
	}
	if update.Gems != nil {
		c.Gems = max(c.Gems+*update.Gems, 0)
	}
	if update.HP != nil {
		c.HP = min(max(*update.HP, 0), c.MaxHP)
	}
	if update.Mana != nil {
		c.Mana = min(max(*update.Mana, 0), c.MaxMana)
	}
	if update.Streak != nil {
		c.CurrentStreak = max(*update.Streak, 0)
		c.LongestStreak = max(c.LongestStreak, c.CurrentStreak)
		c.LastActiveDate = s.now()
	}
}

func (s *service) buildSnapshot(c *domain.Character) *domain.CharacterSnapshot {
	attrs := make([]domain.AttributeProgress, 0, len(c.Attributes))
	for _, a := range c.Attributes {
		attrs = append(attrs, domain.AttributeProgress{
			Attribute:      a,
			Progress:       s.rules.Attribute.Progress(a.CurrentXP, a.Level),
			XPForNextLevel: s.rules.Attribute.XPForNextLevel(a.Level),
		})
	}

	return &domain.CharacterSnapshot{
		Character:        c,
		LevelProgress:    s.rules.Character.Progress(c.CurrentXP, c.Level),
		XPForNextLevel:   s.rules.Character.XPForNextLevel(c.Level),
		StreakMultiplier: s.rules.StreakMultiplier(c.CurrentStreak),
		Attributes:       attrs,
	}
}

// Invalidate drops the cached snapshot for userID
func (s *service) Invalidate(userID string) {
	s.cache.Invalidate(userID)
}

// GetCacheStats returns snapshot cache statistics
func (s *service) GetCacheStats() CacheStats {
	return s.cache.GetStats()
}

func cloneCharacter(c *domain.Character) *domain.Character {
	cp := *c
	cp.Attributes = append([]domain.Attribute(nil), c.Attributes...)
	return &cp
}

func cloneSnapshot(snap *domain.CharacterSnapshot) *domain.CharacterSnapshot {
	cp := *snap
	cp.Character = cloneCharacter(snap.Character)
	cp.Attributes = append([]domain.AttributeProgress(nil), snap.Attributes...)
	return &cp
}
