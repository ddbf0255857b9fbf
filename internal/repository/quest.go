package repository

import (
	"context"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// Quest defines the interface for quest and task persistence.
// Lookups return (nil, nil) when the row does not exist.
type Quest interface {
	// Quest management
	ListQuests(ctx context.Context, characterID string, filter domain.QuestFilter) ([]domain.Quest, error)
	GetQuest(ctx context.Context, questID string) (*domain.Quest, error)
	CreateQuest(ctx context.Context, quest *domain.Quest) error
	UpdateQuest(ctx context.Context, quest *domain.Quest) error
	DeleteQuest(ctx context.Context, questID string) error
	GetCompletedQuests(ctx context.Context, characterID string, limit, offset int) ([]domain.Quest, int, error)

	// Task management. Each write recomputes the owning quest's reward totals.
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	AddTask(ctx context.Context, task *domain.Task) error
	UpdateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, task *domain.Task) error

	BeginTx(ctx context.Context) (QuestTx, error)
}

// QuestTx holds the row locks needed to toggle a task
type QuestTx interface {
	CharacterTx
	GetTaskForUpdate(ctx context.Context, taskID string) (*domain.Task, error)
	GetQuestForUpdate(ctx context.Context, questID string) (*domain.Quest, error)
	GetAttributeForUpdate(ctx context.Context, characterID, name string) (*domain.Attribute, error)
	UpdateTaskCompletion(ctx context.Context, task *domain.Task) error
	UpdateQuestProgress(ctx context.Context, quest *domain.Quest) error
	UpdateAttribute(ctx context.Context, attribute *domain.Attribute) error
}
