package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from map metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types published by the progression collaborators
const (
	TaskCompleted   Type = Type(domain.EventTypeTaskCompleted)
	TaskUncompleted Type = Type(domain.EventTypeTaskUncompleted)
	LevelUp         Type = Type(domain.EventTypeLevelUp)
	QuestCompleted  Type = Type(domain.EventTypeQuestCompleted)
	BossDefeated    Type = Type(domain.EventTypeBossDefeated)
	RewardRedeemed  Type = Type(domain.EventTypeRewardRedeemed)
	StreakReset     Type = Type(domain.EventTypeStreakReset)
)

// Typed event payloads for type safety

// TaskTogglePayloadV1 is the payload for task completed and uncompleted events.
// XP and Gold are signed deltas.
type TaskTogglePayloadV1 struct {
	CharacterID string `json:"character_id"`
	QuestID     string `json:"quest_id"`
	TaskID      string `json:"task_id"`
	XP          int    `json:"xp"`
	Gold        int    `json:"gold"`
	Attribute   string `json:"attribute,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the payload for character level up events
type LevelUpPayloadV1 struct {
	CharacterID   string `json:"character_id"`
	CharacterName string `json:"character_name"`
	OldLevel      int    `json:"old_level"`
	NewLevel      int    `json:"new_level"`
	Title         string `json:"title"`
}

// QuestCompletedPayloadV1 is the payload for quest completion events
type QuestCompletedPayloadV1 struct {
	CharacterID string `json:"character_id"`
	QuestID     string `json:"quest_id"`
	Title       string `json:"title"`
	Difficulty  string `json:"difficulty"`
	XPReward    int    `json:"xp_reward"`
	GoldReward  int    `json:"gold_reward"`
}

// BossDefeatedPayloadV1 is the payload for boss defeat events
type BossDefeatedPayloadV1 struct {
	CharacterID string `json:"character_id"`
	QuestID     string `json:"quest_id"`
	BossName    string `json:"boss_name"`
	MaxHP       int    `json:"max_hp"`
}

// RewardRedeemedPayloadV1 is the payload for reward redemption events
type RewardRedeemedPayloadV1 struct {
	CharacterID string `json:"character_id"`
	RewardID    string `json:"reward_id"`
	RewardName  string `json:"reward_name"`
	GoldSpent   int    `json:"gold_spent"`
}

// StreakResetPayloadV1 is the payload for the daily streak maintenance event
type StreakResetPayloadV1 struct {
	ResetTime       time.Time `json:"reset_time"`
	RecordsAffected int64     `json:"records_affected"`
}

// Type-safe event constructors

// NewTaskToggleEvent creates a task completed or uncompleted event
func NewTaskToggleEvent(completed bool, characterID, questID, taskID string, xp, gold int, attribute string) Event {
	eventType := TaskCompleted
	if !completed {
		eventType = TaskUncompleted
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: TaskTogglePayloadV1{
			CharacterID: characterID,
			QuestID:     questID,
			TaskID:      taskID,
			XP:          xp,
			Gold:        gold,
			Attribute:   attribute,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewLevelUpEvent creates a character level up event
func NewLevelUpEvent(characterID, characterName string, oldLevel, newLevel int, title string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			CharacterID:   characterID,
			CharacterName: characterName,
			OldLevel:      oldLevel,
			NewLevel:      newLevel,
			Title:         title,
		},
	}
}

// NewQuestCompletedEvent creates a quest completed event
func NewQuestCompletedEvent(quest *domain.Quest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestCompleted,
		Payload: QuestCompletedPayloadV1{
			CharacterID: quest.CharacterID,
			QuestID:     quest.ID,
			Title:       quest.Title,
			Difficulty:  quest.Difficulty,
			XPReward:    quest.XPReward,
			GoldReward:  quest.GoldReward,
		},
		Metadata: map[string]interface{}{
			MetadataKeyQuestType: string(quest.Type),
		},
	}
}

// NewBossDefeatedEvent creates a boss defeated event
func NewBossDefeatedEvent(characterID, questID, bossName string, maxHP int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BossDefeated,
		Payload: BossDefeatedPayloadV1{
			CharacterID: characterID,
			QuestID:     questID,
			BossName:    bossName,
			MaxHP:       maxHP,
		},
	}
}

// NewRewardRedeemedEvent creates a reward redeemed event
func NewRewardRedeemedEvent(characterID string, reward *domain.Reward, goldSpent int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardRedeemed,
		Payload: RewardRedeemedPayloadV1{
			CharacterID: characterID,
			RewardID:    reward.ID,
			RewardName:  reward.Name,
			GoldSpent:   goldSpent,
		},
		Metadata: map[string]interface{}{
			MetadataKeyCategory: reward.Category,
		},
	}
}

// NewStreakResetEvent creates a streak maintenance event
func NewStreakResetEvent(resetTime time.Time, recordsAffected int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakReset,
		Payload: StreakResetPayloadV1{
			ResetTime:       resetTime,
			RecordsAffected: recordsAffected,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services. Failures are
// retried in the background and never reach the caller.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously, in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
