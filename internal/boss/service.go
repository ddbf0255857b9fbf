package boss

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/concurrency"
	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/logger"
	"github.com/osse101/TaskQuest_Go/internal/progression"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

const (
	ErrMsgListBossesFailed   = "failed to list bosses"
	ErrMsgGetBossFailed      = "failed to get boss"
	ErrMsgCreateBossFailed   = "failed to create boss"
	ErrMsgDeleteBossFailed   = "failed to delete boss"
	ErrMsgRecordFailed       = "failed to record boss attempt"
	ErrMsgGetCharacterFailed = "failed to get character"
	ErrMsgNameRequired       = "name is required"

	LogMsgBossCreated     = "Boss created"
	LogMsgBossDeleted     = "Boss deleted"
	LogMsgAttemptRecorded = "Boss attempt recorded"
)

// CharacterProvider resolves the acting character
type CharacterProvider interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Character, error)
}

// Service defines the interface for the boss registry
type Service interface {
	ListBosses(ctx context.Context, userID string) ([]domain.Boss, error)
	GetBoss(ctx context.Context, userID, bossID string) (*domain.Boss, error)
	CreateBoss(ctx context.Context, userID string, input domain.CreateBossInput) (*domain.Boss, error)
	RecordAttempt(ctx context.Context, userID, bossID string, input domain.BossAttemptInput) (*domain.Boss, *domain.BossAttempt, error)
	DeleteBoss(ctx context.Context, userID, bossID string) error
}

type service struct {
	repo       repository.Boss
	characters CharacterProvider
	locks      *concurrency.LockManager
	now        func() time.Time
}

// NewService creates a boss registry service
func NewService(repo repository.Boss, characters CharacterProvider, locks *concurrency.LockManager) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:       repo,
		characters: characters,
		locks:      locks,
		now:        time.Now,
	}
}

func (s *service) characterID(ctx context.Context, userID string) (string, error) {
	c, err := s.characters.GetOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}
	return c.ID, nil
}

// ListBosses returns every boss with its most recent attempts
func (s *service) ListBosses(ctx context.Context, userID string) ([]domain.Boss, error) {
	characterID, err := s.characterID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bosses, err := s.repo.ListBosses(ctx, characterID, domain.RecentBossAttempts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListBossesFailed, err)
	}
	if bosses == nil {
		bosses = []domain.Boss{}
	}
	return bosses, nil
}

// GetBoss returns a boss with its full attempt history
func (s *service) GetBoss(ctx context.Context, userID, bossID string) (*domain.Boss, error) {
	characterID, err := s.characterID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ownedBoss(ctx, characterID, bossID, 0)
}

func (s *service) ownedBoss(ctx context.Context, characterID, bossID string, attemptLimit int) (*domain.Boss, error) {
	b, err := s.repo.GetBoss(ctx, bossID, attemptLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetBossFailed, err)
	}
	if b == nil || b.CharacterID != characterID {
		return nil, domain.ErrBossNotFound
	}
	return b, nil
}

// CreateBoss registers a boss. Names are unique per character.
func (s *service) CreateBoss(ctx context.Context, userID string, input domain.CreateBossInput) (*domain.Boss, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNameRequired)
	}

	characterID, err := s.characterID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBossByName(ctx, characterID, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetBossFailed, err)
	}
	if existing != nil {
		return nil, domain.ErrBossAlreadyExists
	}

	difficulty := progression.Difficulty(input.Difficulty).Normalize()
	if difficulty == "" {
		difficulty = progression.DifficultyNormal
	}
	maxHP := input.MaxHP
	if maxHP <= 0 {
		maxHP = domain.DefaultBossHP
	}

	b := &domain.Boss{
		CharacterID: characterID,
		Name:        name,
		Description: input.Description,
		Difficulty:  string(difficulty),
		MaxHP:       maxHP,
		Attempts:    []domain.BossAttempt{},
	}
	if err := s.repo.CreateBoss(ctx, b); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateBossFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgBossCreated, "boss_id", b.ID, "name", b.Name)
	return b, nil
}

// RecordAttempt stores a fight and updates the boss record: attempt and
// defeat counts, first defeat and best time.
func (s *service) RecordAttempt(ctx context.Context, userID, bossID string, input domain.BossAttemptInput) (*domain.Boss, *domain.BossAttempt, error) {
	characterID, err := s.characterID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.Lock(characterID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgRecordFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	b, err := tx.GetBossForUpdate(ctx, bossID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgGetBossFailed, err)
	}
	if b == nil || b.CharacterID != characterID {
		return nil, nil, domain.ErrBossNotFound
	}

	attempt := &domain.BossAttempt{
		BossID:      b.ID,
		QuestID:     nonEmpty(input.QuestID),
		Defeated:    input.Defeated,
		TimeSpent:   positive(input.TimeSpent),
		DamageDealt: positive(input.DamageDealt),
	}
	if err := tx.InsertBossAttempt(ctx, attempt); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgRecordFailed, err)
	}

	applyAttempt(b, attempt, s.now())
	if err := tx.UpdateBossRecord(ctx, b); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgRecordFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgRecordFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgAttemptRecorded,
		"boss_id", b.ID,
		"defeated", attempt.Defeated,
		"attempts", b.TotalAttempts)

	updated, err := s.ownedBoss(ctx, characterID, bossID, domain.RecentBossAttempts)
	if err != nil {
		return nil, nil, err
	}
	return updated, attempt, nil
}

func applyAttempt(b *domain.Boss, attempt *domain.BossAttempt, now time.Time) {
	b.TotalAttempts++
	b.LastAttemptedAt = &now
	if !attempt.Defeated {
		return
	}

	b.TotalDefeats++
	if b.FirstDefeatedAt == nil {
		b.FirstDefeatedAt = &now
	}
	if attempt.TimeSpent != nil && (b.BestTime == nil || *attempt.TimeSpent < *b.BestTime) {
		best := *attempt.TimeSpent
		b.BestTime = &best
	}
}

// DeleteBoss removes a boss and its attempts
func (s *service) DeleteBoss(ctx context.Context, userID, bossID string) error {
	characterID, err := s.characterID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.ownedBoss(ctx, characterID, bossID, domain.RecentBossAttempts); err != nil {
		return err
	}

	if err := s.repo.DeleteBoss(ctx, bossID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeleteBossFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgBossDeleted, "boss_id", bossID)
	return nil
}

func positive(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

func nonEmpty(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}
