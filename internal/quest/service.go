package quest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/concurrency"
	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/logger"
	"github.com/osse101/TaskQuest_Go/internal/progression"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// CharacterProvider resolves the acting character and drops its cached
// snapshot after a write
type CharacterProvider interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Character, error)
	Invalidate(userID string)
}

// Service defines the interface for quest and task operations
type Service interface {
	ListQuests(ctx context.Context, userID string, filter domain.QuestFilter) ([]domain.Quest, error)
	GetQuest(ctx context.Context, userID, questID string) (*domain.Quest, error)
	CreateQuest(ctx context.Context, userID string, input domain.CreateQuestInput) (*domain.Quest, error)
	UpdateQuest(ctx context.Context, userID, questID string, update domain.QuestUpdate) (*domain.Quest, error)
	DeleteQuest(ctx context.Context, userID, questID string) error
	History(ctx context.Context, userID string, limit, offset int) (*domain.QuestHistory, error)

	AddTask(ctx context.Context, userID, questID string, input domain.NewTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	ToggleTask(ctx context.Context, userID, taskID string) (*domain.ToggleResult, error)
}

type service struct {
	repo       repository.Quest
	characters CharacterProvider
	rules      *progression.Rules
	locks      *concurrency.LockManager
	publisher  event.Publisher
	now        func() time.Time
}

// NewService creates a quest service. A nil rules table uses the defaults;
// a nil publisher disables events.
func NewService(repo repository.Quest, characters CharacterProvider, rules *progression.Rules, locks *concurrency.LockManager, publisher event.Publisher) Service {
	if rules == nil {
		rules = progression.DefaultRules()
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:       repo,
		characters: characters,
		rules:      rules,
		locks:      locks,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *service) character(ctx context.Context, userID string) (*domain.Character, error) {
	c, err := s.characters.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}
	return c, nil
}

// ownedQuest loads a quest and hides quests of other characters
func (s *service) ownedQuest(ctx context.Context, characterID, questID string) (*domain.Quest, error) {
	q, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetQuestFailed, err)
	}
	if q == nil || q.CharacterID != characterID {
		return nil, domain.ErrQuestNotFound
	}
	return q, nil
}

// ownedTask loads a task and its quest, hiding tasks of other characters
func (s *service) ownedTask(ctx context.Context, characterID, taskID string) (*domain.Task, *domain.Quest, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgGetTaskFailed, err)
	}
	if task == nil {
		return nil, nil, domain.ErrTaskNotFound
	}

	q, err := s.repo.GetQuest(ctx, task.QuestID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgGetQuestFailed, err)
	}
	if q == nil || q.CharacterID != characterID {
		return nil, nil, domain.ErrTaskNotFound
	}
	return task, q, nil
}

// ListQuests returns the character's quests, newest first
func (s *service) ListQuests(ctx context.Context, userID string, filter domain.QuestFilter) ([]domain.Quest, error) {
	c, err := s.character(ctx, userID)
	if err != nil {
		return nil, err
	}

	quests, err := s.repo.ListQuests(ctx, c.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListQuestsFailed, err)
	}
	if quests == nil {
		quests = []domain.Quest{}
	}
	return quests, nil
}

// GetQuest returns one quest with its tasks
func (s *service) GetQuest(ctx context.Context, userID, questID string) (*domain.Quest, error) {
	c, err := s.character(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ownedQuest(ctx, c.ID, questID)
}

// CreateQuest creates a quest whose task rewards scale with its difficulty
func (s *service) CreateQuest(ctx context.Context, userID string, input domain.CreateQuestInput) (*domain.Quest, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTitleRequired)
	}
	for _, t := range input.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			return nil, fmt.Errorf("%w: task %s", domain.ErrInvalidInput, ErrMsgTitleRequired)
		}
		if err := validateAttribute(t.AttributeBoost); err != nil {
			return nil, err
		}
	}

	c, err := s.character(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := s.buildQuest(c.ID, title, input)
	if err := s.repo.CreateQuest(ctx, q); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateQuestFailed, err)
	}

	log.Info(LogMsgQuestCreated,
		"quest_id", q.ID,
		"difficulty", q.Difficulty,
		"tasks", len(q.Tasks),
		"boss_battle", q.IsBossBattle)
	return q, nil
}

// buildQuest applies defaults and derives rewards from the difficulty.
// Each task earns floor(20*m) XP and floor(10*m) gold; the quest starts at
// floor(50*n*m) XP and floor(20*n*m) gold.
func (s *service) buildQuest(characterID, title string, input domain.CreateQuestInput) *domain.Quest {
	questType := input.Type
	if questType == "" {
		questType = domain.QuestTypeSide
	}
	difficulty := progression.Difficulty(input.Difficulty).Normalize()
	if difficulty == "" {
		difficulty = progression.DifficultyNormal
	}
	billing := input.BillingType
	if billing == "" {
		billing = domain.BillingFixed
	}
	mult := s.rules.DifficultyMultiplier(difficulty)

	q := &domain.Quest{
		CharacterID: characterID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Type:        questType,
		Difficulty:  string(difficulty),
		Status:      domain.QuestStatusActive,
		Deadline:    input.Deadline,
		XPReward:    progression.ScaleReward(domain.DefaultQuestXPPerTask*len(input.Tasks), mult),
		GoldReward:  progression.ScaleReward(domain.DefaultQuestGoldPerTask*len(input.Tasks), mult),
		IsDaily:     questType == domain.QuestTypeDaily,
		BillingType: billing,
		Tasks:       make([]domain.Task, 0, len(input.Tasks)),
	}

	if input.IsBossBattle && questType == domain.QuestTypeMain {
		hp := domain.DefaultBossHP
		if input.BossHP != nil && *input.BossHP > 0 {
			hp = *input.BossHP
		}
		q.IsBossBattle = true
		q.BossName = input.BossName
		q.BossHP = &hp
		maxHP := hp
		q.BossMaxHP = &maxHP
	}

	switch billing {
	case domain.BillingFixed:
		q.BudgetAmount = positiveOrNil(input.BudgetAmount)
	case domain.BillingHourly:
		q.HourlyRate = positiveOrNil(input.HourlyRate)
		q.EstimatedHours = positiveOrNil(input.EstimatedHours)
		if worked := positiveOrNil(input.HoursWorked); worked != nil {
			q.HoursWorked = *worked
		}
	}

	taskXP := progression.ScaleReward(domain.DefaultQuestTaskXP, mult)
	taskGold := progression.ScaleReward(domain.DefaultQuestTaskGold, mult)
	for i, t := range input.Tasks {
		q.Tasks = append(q.Tasks, domain.Task{
			Title:          strings.TrimSpace(t.Title),
			Description:    strings.TrimSpace(t.Description),
			XPReward:       taskXP,
			GoldReward:     taskGold,
			AttributeBoost: normalizeAttribute(t.AttributeBoost),
			Order:          i,
		})
	}
	return q
}

// UpdateQuest applies a partial update. Setting isPaid stamps or clears paidAt.
func (s *service) UpdateQuest(ctx context.Context, userID, questID string, update domain.QuestUpdate) (*domain.Quest, error) {
	c, err := s.character(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(c.ID)
	defer unlock()

	q, err := s.ownedQuest(ctx, c.ID, questID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTitleRequired)
		}
		q.Title = title
	}
	if update.Description != nil {
		q.Description = strings.TrimSpace(*update.Description)
	}
	if update.Status != nil && *update.Status != q.Status {
		q.Status = *update.Status
		if q.Status == domain.QuestStatusCompleted {
			now := s.now()
			q.CompletedAt = &now
		} else {
			q.CompletedAt = nil
		}
	}
	if update.Deadline != nil {
		q.Deadline = update.Deadline
	}
	if update.BillingType != nil {
		q.BillingType = *update.BillingType
	}
	if update.BudgetAmount != nil {
		q.BudgetAmount = update.BudgetAmount
	}
	if update.HourlyRate != nil {
		q.HourlyRate = update.HourlyRate
	}
	if update.EstimatedHours != nil {
		q.EstimatedHours = update.EstimatedHours
	}
	if update.HoursWorked != nil {
		q.HoursWorked = max(*update.HoursWorked, 0)
	}
	if update.IsPaid != nil {
		q.IsPaid = *update.IsPaid
		if q.IsPaid {
			now := s.now()
			q.PaidAt = &now
		} else {
			q.PaidAt = nil
		}
	}

	if err := s.repo.UpdateQuest(ctx, q); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateQuestFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgQuestUpdated, "quest_id", q.ID, "status", q.Status)
	return q, nil
}

// DeleteQuest removes a quest and its tasks
func (s *service) DeleteQuest(ctx context.Context, userID, questID string) error {
	c, err := s.character(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.ownedQuest(ctx, c.ID, questID); err != nil {
		return err
	}

	if err := s.repo.DeleteQuest(ctx, questID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeleteQuestFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgQuestDeleted, "quest_id", questID)
	return nil
}

// History pages through completed quests, most recent first
func (s *service) History(ctx context.Context, userID string, limit, offset int) (*domain.QuestHistory, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	limit = min(limit, domain.MaxHistoryLimit)
	offset = max(offset, 0)

	c, err := s.character(ctx, userID)
	if err != nil {
		return nil, err
	}

	quests, total, err := s.repo.GetCompletedQuests(ctx, c.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetHistoryFailed, err)
	}
	if quests == nil {
		quests = []domain.Quest{}
	}

	return &domain.QuestHistory{
		Quests:  quests,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+len(quests) < total,
	}, nil
}

func positiveOrNil(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

// normalizeAttribute maps an empty boost to no boost
func normalizeAttribute(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.ToLower(strings.TrimSpace(*name))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateAttribute(name *string) error {
	n := normalizeAttribute(name)
	if n != nil && !domain.IsValidAttribute(*n) {
		return fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgUnknownAttribute, *n)
	}
	return nil
}
