package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/boss"
	"github.com/osse101/TaskQuest_Go/internal/bootstrap"
	"github.com/osse101/TaskQuest_Go/internal/character"
	"github.com/osse101/TaskQuest_Go/internal/concurrency"
	"github.com/osse101/TaskQuest_Go/internal/config"
	"github.com/osse101/TaskQuest_Go/internal/database"
	"github.com/osse101/TaskQuest_Go/internal/quest"
	"github.com/osse101/TaskQuest_Go/internal/reward"
	"github.com/osse101/TaskQuest_Go/internal/server"
	"github.com/osse101/TaskQuest_Go/internal/stats"
	"github.com/osse101/TaskQuest_Go/internal/worker"
)

const shutdownTimeout = 10 * time.Second

//	@title			TaskQuest API
//	@version		1.0
//	@description	Gamified task manager: quests, tasks, bosses and a reward shop.
//	@BasePath		/
func main() {
	if err := run(); err != nil {
		log.Fatalf("TaskQuest failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	rules, err := bootstrap.LoadBalanceRules(cfg)
	if err != nil {
		return err
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}

	ctx := context.Background()
	applied, err := database.NewMigrator(dbPool).Up(ctx)
	if err != nil {
		dbPool.Close()
		return err
	}
	slog.Info("Database ready", "migrations_applied", applied)

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	notifyPool := worker.NewPool(cfg.NotifyWorkers, cfg.NotifyQueueSize)
	notifyPool.Start()

	discordSession, err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:   eventBus,
		NotifyPool: notifyPool,
		Config:     cfg,
	})
	if err != nil {
		notifyPool.Stop()
		dbPool.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	locks := concurrency.NewLockManager()

	characterService := character.NewService(repos.Character, rules, locks, publisher, character.CacheConfig{
		Size: cfg.CacheSize,
		TTL:  cfg.CacheTTL,
	})
	questService := quest.NewService(repos.Quest, characterService, rules, locks, publisher)
	bossService := boss.NewService(repos.Boss, characterService, locks)
	rewardService := reward.NewService(repos.Reward, characterService, locks, publisher)
	statsService := stats.NewService(repos.Quest, characterService)

	streakWorker := worker.NewStreakResetWorker(repos.Character, publisher)
	streakWorker.Start()

	srv := server.NewServer(cfg.Port, cfg.TrustedProxies, server.Dependencies{
		DBPool:           dbPool,
		UserID:           cfg.DefaultUserID,
		Rules:            rules,
		CharacterService: characterService,
		QuestService:     questService,
		BossService:      bossService,
		RewardService:    rewardService,
		StatsService:     statsService,
	})

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "port", cfg.Port, "user_id", cfg.DefaultUserID)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case runErr = <-serverErr:
		slog.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		StreakWorker:       streakWorker,
		ResilientPublisher: publisher,
		NotifyPool:         notifyPool,
		DiscordSession:     discordSession,
		DBPool:             dbPool,
	})

	return runErr
}
