package quest

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/logger"
)

// AddTask appends a task to an open quest and refreshes the quest totals
func (s *service) AddTask(ctx context.Context, userID, questID string, input domain.NewTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTitleRequired)
	}
	if err := validateAttribute(input.AttributeBoost); err != nil {
		return nil, err
	}

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
	if q.Status == domain.QuestStatusCompleted {
		return nil, domain.ErrQuestCompleted
	}

	task := &domain.Task{
		QuestID:        q.ID,
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		XPReward:       rewardOrDefault(input.XPReward, domain.DefaultAddedTaskXP),
		GoldReward:     rewardOrDefault(input.GoldReward, domain.DefaultAddedTaskGold),
		AttributeBoost: normalizeAttribute(input.AttributeBoost),
	}
	if input.AttributeXP != nil {
		xp := max(*input.AttributeXP, 0)
		task.AttributeXP = &xp
	}

	if err := s.repo.AddTask(ctx, task); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAddTaskFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTaskAdded, "quest_id", q.ID, "task_id", task.ID, "order", task.Order)
	return task, nil
}

// UpdateTask edits a task. Reward changes refresh the quest totals; a
// completed task keeps the rewards it already paid out.
func (s *service) UpdateTask(ctx context.Context, userID, taskID string, update domain.TaskUpdate) (*domain.Task, error) {
	c, err := s.character(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(c.ID)
	defer unlock()

	task, _, err := s.ownedTask(ctx, c.ID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTitleRequired)
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = strings.TrimSpace(*update.Description)
	}

	xp, gold := task.XPReward, task.GoldReward
	if update.XPReward != nil {
		xp = max(*update.XPReward, 0)
	}
	if update.GoldReward != nil {
		gold = max(*update.GoldReward, 0)
	}

	boost, attrXP := task.AttributeBoost, task.AttributeXP
	if update.AttributeBoost != nil {
		if err := validateAttribute(update.AttributeBoost); err != nil {
			return nil, err
		}
		boost = normalizeAttribute(update.AttributeBoost)
	}
	if update.AttributeXP != nil {
		v := max(*update.AttributeXP, 0)
		attrXP = &v
	}

	// Uncompleting takes back exactly what completing granted
	if task.Completed && (xp != task.XPReward || gold != task.GoldReward ||
		!equalPtr(boost, task.AttributeBoost) || !equalPtr(attrXP, task.AttributeXP)) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgCompletedTaskReward)
	}
	task.XPReward, task.GoldReward = xp, gold
	task.AttributeBoost, task.AttributeXP = boost, attrXP

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateTaskFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTaskUpdated, "task_id", task.ID)
	return task, nil
}

// DeleteTask removes an incomplete task and refreshes the quest totals
func (s *service) DeleteTask(ctx context.Context, userID, taskID string) error {
	c, err := s.character(ctx, userID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(c.ID)
	defer unlock()

	task, _, err := s.ownedTask(ctx, c.ID, taskID)
	if err != nil {
		return err
	}
	if task.Completed {
		return domain.ErrTaskCompleted
	}

	if err := s.repo.DeleteTask(ctx, task); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeleteTaskFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTaskDeleted, "task_id", task.ID, "quest_id", task.QuestID)
	return nil
}

func rewardOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return max(*v, 0)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
