package bootstrap

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/TaskQuest_Go/internal/config"
	"github.com/osse101/TaskQuest_Go/internal/event"
)

// InitializeEventSystem builds the in-memory bus that progression events
// travel over and the retrying publisher the services hold. Zero config
// values fall back to the Event* defaults.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	var (
		retries    = cmp.Or(cfg.EventMaxRetries, EventDefaultMaxRetries)
		delay      = cmp.Or(cfg.EventRetryDelay, EventDefaultRetryDelay)
		deadLetter = cmp.Or(cfg.DeadLetterPath, EventDefaultDeadLetterPath)
	)

	if err := os.MkdirAll(filepath.Dir(deadLetter), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, retries, delay, deadLetter)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", retries,
		"retry_delay", delay,
		"deadletter_path", deadLetter)
	return bus, publisher, nil
}
