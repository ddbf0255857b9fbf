package quest

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/logger"
	"github.com/osse101/TaskQuest_Go/internal/progression"
	"github.com/osse101/TaskQuest_Go/internal/repository"
)

// ToggleTask completes or uncompletes a task and moves the character, its
// attribute, the quest and any boss accordingly. Everything is written in
// one transaction while the character's lock is held.
func (s *service) ToggleTask(ctx context.Context, userID, taskID string) (*domain.ToggleResult, error) {
	log := logger.FromContext(ctx)

	actor, err := s.character(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locks.LockContext(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	task, err := tx.GetTaskForUpdate(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetTaskFailed, err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	q, err := tx.GetQuestForUpdate(ctx, task.QuestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetQuestFailed, err)
	}
	if q == nil || q.CharacterID != actor.ID {
		return nil, domain.ErrTaskNotFound
	}

	c, err := tx.GetCharacterForUpdate(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetCharacterFailed, err)
	}
	if c == nil {
		return nil, domain.ErrCharacterNotFound
	}

	now := s.now()
	completed := !task.Completed
	task.Completed = completed
	task.CompletedAt = nil
	if completed {
		task.CompletedAt = &now
	}
	if err := tx.UpdateTaskCompletion(ctx, task); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgToggleFailed, err)
	}
	syncTask(q, task)

	result := &domain.ToggleResult{Character: c, Quest: q}
	s.applyRewards(c, task, completed, result)
	if err := s.applyAttribute(ctx, tx, c, task, completed, result); err != nil {
		return nil, err
	}
	applyBossDamage(q, task, completed, result)
	applyQuestProgress(c, q, completed, now, result)
	result.Task = *task

	if err := tx.UpdateQuestProgress(ctx, q); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgToggleFailed, err)
	}
	if err := tx.UpdateCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgToggleFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTxFailed, err)
	}
	s.characters.Invalidate(userID)

	log.Info(LogMsgTaskToggled,
		"task_id", task.ID,
		"completed", completed,
		"xp", result.Rewards.XP,
		"gold", result.Rewards.Gold,
		"level", c.Level)

	s.publishToggle(ctx, c, q, task, result)
	return result, nil
}

// applyRewards moves XP and gold by the task's flat rewards, re-derives the
// level and title, and regenerates HP and mana on completion.
func (s *service) applyRewards(c *domain.Character, task *domain.Task, completed bool, result *domain.ToggleResult) {
	xp, gold := task.XPReward, task.GoldReward
	if !completed {
		xp, gold = -xp, -gold
	}

	c.TotalXP = max(c.TotalXP+int64(xp), 0)
	c.CurrentXP = max(c.CurrentXP+int64(xp), 0)
	c.Gold = max(c.Gold+gold, 0)
	result.Rewards.XP = xp
	result.Rewards.Gold = gold

	oldLevel := c.Level
	newLevel := s.rules.Character.LevelFromXP(c.TotalXP)
	if newLevel != oldLevel {
		c.Level = newLevel
		c.Title = s.rules.TitleForLevel(newLevel)
		if newLevel > oldLevel {
			result.LevelUp = &domain.LevelUp{OldLevel: oldLevel, NewLevel: newLevel, NewTitle: c.Title}
		}
	}

	if completed {
		c.HP = min(c.HP+domain.TaskCompleteHPRegen, c.MaxHP)
		c.Mana = min(c.Mana+domain.TaskCompleteManaRegen, c.MaxMana)
		result.Rewards.HPRegen = domain.TaskCompleteHPRegen
		result.Rewards.ManaRegen = domain.TaskCompleteManaRegen
	}
}

// applyAttribute grants the task's attribute XP on completion and takes the
// same amount back on uncompletion
func (s *service) applyAttribute(ctx context.Context, tx repository.QuestTx, c *domain.Character, task *domain.Task, completed bool, result *domain.ToggleResult) error {
	if task.AttributeBoost == nil || *task.AttributeBoost == "" {
		return nil
	}

	attr, err := tx.GetAttributeForUpdate(ctx, c.ID, *task.AttributeBoost)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgToggleFailed, err)
	}
	if attr == nil {
		logger.FromContext(ctx).Warn(LogMsgAttributeMissing, "task_id", task.ID, "attribute", *task.AttributeBoost)
		return nil
	}

	delta := domain.DefaultAttributeXP
	if task.AttributeXP != nil {
		delta = *task.AttributeXP
	}
	if !completed {
		delta = -delta
	}

	oldLevel := attr.Level
	attr.CurrentXP = max(attr.CurrentXP+int64(delta), 0)
	attr.Level = s.rules.Attribute.LevelFromXP(attr.CurrentXP)
	if err := tx.UpdateAttribute(ctx, attr); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgToggleFailed, err)
	}

	for i := range c.Attributes {
		if c.Attributes[i].ID == attr.ID {
			c.Attributes[i] = *attr
		}
	}
	result.Attribute = &domain.AttributeChange{
		Name:     attr.Name,
		XPDelta:  delta,
		OldLevel: oldLevel,
		NewLevel: attr.Level,
	}
	return nil
}

// applyBossDamage moves the boss HP by the task's share of the quest XP.
// A boss without recorded HP starts at full health.
func applyBossDamage(q *domain.Quest, task *domain.Task, completed bool, result *domain.ToggleResult) {
	if !q.IsBossBattle || q.BossMaxHP == nil {
		return
	}

	maxHP := *q.BossMaxHP
	hp := maxHP
	if q.BossHP != nil {
		hp = *q.BossHP
	}

	total := 0
	for _, t := range q.Tasks {
		total += t.XPReward
	}

	damage := progression.CalculateBossDamage(task.XPReward, maxHP, total)
	newHP := progression.ApplyBossDamage(hp, maxHP, damage, completed)
	q.BossHP = &newHP
	result.Boss = &domain.BossDamage{Damage: damage, HP: newHP, MaxHP: maxHP}
}

// applyQuestProgress completes the quest when its last task is checked and
// reactivates it when a task of a completed quest is unchecked. Completing a
// boss quest always leaves the boss at zero HP.
func applyQuestProgress(c *domain.Character, q *domain.Quest, completed bool, now time.Time, result *domain.ToggleResult) {
	if completed && allTasksCompleted(q) {
		c.HP = min(c.HP+domain.QuestCompleteHPBonus, c.MaxHP)
		c.Mana = min(c.Mana+domain.QuestCompleteManaBonus, c.MaxMana)
		result.Rewards.HPRegen += domain.QuestCompleteHPBonus
		result.Rewards.ManaRegen += domain.QuestCompleteManaBonus

		q.Status = domain.QuestStatusCompleted
		q.CompletedAt = &now
		result.QuestCompleted = true

		if q.IsBossBattle {
			zero := 0
			q.BossHP = &zero
			if result.Boss == nil {
				result.Boss = &domain.BossDamage{}
				if q.BossMaxHP != nil {
					result.Boss.MaxHP = *q.BossMaxHP
				}
			}
			result.Boss.HP = 0
			result.Boss.Defeated = true
		}
		return
	}

	if !completed && q.Status == domain.QuestStatusCompleted {
		q.Status = domain.QuestStatusActive
		q.CompletedAt = nil
	}
}

func (s *service) publishToggle(ctx context.Context, c *domain.Character, q *domain.Quest, task *domain.Task, result *domain.ToggleResult) {
	if s.publisher == nil {
		return
	}
	log := logger.FromContext(ctx)

	attribute := ""
	if result.Attribute != nil {
		attribute = result.Attribute.Name
	}
	s.publisher.PublishWithRetry(ctx, event.NewTaskToggleEvent(
		task.Completed, c.ID, q.ID, task.ID, result.Rewards.XP, result.Rewards.Gold, attribute))

	if result.LevelUp != nil {
		log.Info(LogMsgCharacterLeveledUp, "character_id", c.ID, "level", result.LevelUp.NewLevel)
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(
			c.ID, c.Name, result.LevelUp.OldLevel, result.LevelUp.NewLevel, result.LevelUp.NewTitle))
	}

	if result.QuestCompleted {
		log.Info(LogMsgQuestCompleted, "quest_id", q.ID, "title", q.Title)
		s.publisher.PublishWithRetry(ctx, event.NewQuestCompletedEvent(q))
	}

	if result.Boss != nil && result.Boss.Defeated {
		bossName := q.Title
		if q.BossName != nil && *q.BossName != "" {
			bossName = *q.BossName
		}
		log.Info(LogMsgBossDefeated, "quest_id", q.ID, "boss", bossName)
		s.publisher.PublishWithRetry(ctx, event.NewBossDefeatedEvent(c.ID, q.ID, bossName, result.Boss.MaxHP))
	}
}

// syncTask replaces the quest's copy of task
func syncTask(q *domain.Quest, task *domain.Task) {
	for i := range q.Tasks {
		if q.Tasks[i].ID == task.ID {
			q.Tasks[i] = *task
			return
		}
	}
	q.Tasks = append(q.Tasks, *task)
}

func allTasksCompleted(q *domain.Quest) bool {
	if len(q.Tasks) == 0 {
		return false
	}
	for _, t := range q.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}
