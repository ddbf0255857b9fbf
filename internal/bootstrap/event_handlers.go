package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TaskQuest_Go/internal/config"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/metrics"
	"github.com/osse101/TaskQuest_Go/internal/notify"
	"github.com/osse101/TaskQuest_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus   event.Bus
	NotifyPool *worker.Pool
	Config     *config.Config
}

// RegisterEventHandlers sets up the bus subscribers:
// - Metrics collector (Prometheus counters per event type)
// - Discord notifier, delivered through the worker pool, when configured
//
// The returned session is nil when Discord is disabled.
func RegisterEventHandlers(deps EventHandlerDependencies) (*discordgo.Session, error) {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if !deps.Config.DiscordEnabled() {
		slog.Info(LogMsgNotifierDisabled)
		return nil, nil
	}

	session, err := notify.NewSession(deps.Config.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscordSession, err)
	}

	notifier := notify.New(session, deps.Config.DiscordChannelID)
	notifier.Register(deps.EventBus, deps.NotifyPool.Async)
	slog.Info(LogMsgNotifierRegistered, "channel_id", deps.Config.DiscordChannelID)

	return session, nil
}
