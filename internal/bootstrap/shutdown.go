package bootstrap

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TaskQuest_Go/internal/database"
	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/server"
	"github.com/osse101/TaskQuest_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Optional components may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	StreakWorker       *worker.StreakResetWorker
	ResilientPublisher *event.ResilientPublisher
	NotifyPool         *worker.Pool
	DiscordSession     *discordgo.Session
	DBPool             database.Pool
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Streak worker (cancel the pending timer)
// 3. Event publisher (flush retries, which may still notify)
// 4. Notification pool and Discord session
// 5. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.StreakWorker != nil {
		if err := components.StreakWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgStreakWorkerShutdownFailed, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.NotifyPool != nil {
		components.NotifyPool.Stop()
	}

	if components.DiscordSession != nil {
		if err := components.DiscordSession.Close(); err != nil {
			slog.Error(LogMsgDiscordCloseFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
