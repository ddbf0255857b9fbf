package metrics

import (
	"context"

	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.TaskCompleted,
		event.TaskUncompleted,
		event.LevelUp,
		event.QuestCompleted,
		event.BossDefeated,
		event.RewardRedeemed,
		event.StreakReset,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics. Undecodable payloads
// are counted as published and otherwise ignored.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.TaskCompleted, event.TaskUncompleted:
		var p event.TaskTogglePayloadV1
		if p, err = event.DecodePayload[event.TaskTogglePayloadV1](evt.Payload); err == nil {
			if evt.Type == event.TaskCompleted {
				TasksToggled.WithLabelValues(DirectionCompleted).Inc()
				XPAwarded.Add(float64(max(p.XP, 0)))
				GoldAwarded.Add(float64(max(p.Gold, 0)))
			} else {
				TasksToggled.WithLabelValues(DirectionUncompleted).Inc()
			}
		}

	case event.LevelUp:
		var p event.LevelUpPayloadV1
		if p, err = event.DecodePayload[event.LevelUpPayloadV1](evt.Payload); err == nil {
			LevelUps.Inc()
			CharacterLevel.Set(float64(p.NewLevel))
		}

	case event.QuestCompleted:
		var p event.QuestCompletedPayloadV1
		if p, err = event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload); err == nil {
			QuestsCompleted.WithLabelValues(p.Difficulty).Inc()
		}

	case event.BossDefeated:
		BossesDefeated.Inc()

	case event.RewardRedeemed:
		var p event.RewardRedeemedPayloadV1
		if p, err = event.DecodePayload[event.RewardRedeemedPayloadV1](evt.Payload); err == nil {
			category, _ := evt.GetMetadataValue(event.MetadataKeyCategory).(string)
			RewardsRedeemed.WithLabelValues(category).Inc()
			GoldSpent.Add(float64(max(p.GoldSpent, 0)))
		}

	case event.StreakReset:
		var p event.StreakResetPayloadV1
		if p, err = event.DecodePayload[event.StreakResetPayloadV1](evt.Payload); err == nil {
			StreaksReset.Add(float64(max(p.RecordsAffected, 0)))
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
