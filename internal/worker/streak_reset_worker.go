package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/logger"
)

// StreakResetter clears the streak of characters inactive since a cutoff
type StreakResetter interface {
	ResetInactiveStreaks(ctx context.Context, activeSince time.Time) (int64, error)
}

// StreakResetWorker zeroes current streaks at 00:00 UTC for characters that
// were not active yesterday
type StreakResetWorker struct {
	repo      StreakResetter
	publisher event.Publisher
	now       func() time.Time
	timer     *time.Timer
	shutdown  chan struct{}
	wg        sync.WaitGroup
	mu        sync.Mutex
}

// NewStreakResetWorker creates a new StreakResetWorker. A nil publisher
// disables the completion event.
func NewStreakResetWorker(repo StreakResetter, publisher event.Publisher) *StreakResetWorker {
	return &StreakResetWorker{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		shutdown:  make(chan struct{}),
	}
}

// Start schedules the first reset
func (w *StreakResetWorker) Start() {
	w.scheduleNext()
}

// scheduleNext waits in two stages so an early timer never spins: a long
// standby until shortly before midnight, then the exact approach.
func (w *StreakResetWorker) scheduleNext() {
	duration := timeUntilNextReset(w.now())
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}

	if w.timer != nil {
		w.timer.Stop()
	}

	if duration > standbyThreshold {
		wait := duration - approachLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgStreakResetStandby, "next_check_at", w.now().UTC().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// An early fire reschedules for the remainder
		rem := timeUntilNextReset(w.now())
		if rem > earlyTriggerTolerance && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		if w.execute() {
			w.scheduleNext()
		}
	})
	log.Info(LogMsgStreakResetApproach, "next_reset_at", w.now().UTC().Add(duration))
}

// execute runs a reset in a tracked goroutine. The shutdown check and
// wg.Add share mu with Shutdown so Wait never races a late Add.
func (w *StreakResetWorker) execute() bool {
	w.mu.Lock()
	select {
	case <-w.shutdown:
		w.mu.Unlock()
		return false
	default:
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		_, _ = w.RunOnce(context.Background())
	}()
	return true
}

// RunOnce resets the streaks of characters whose last activity is before
// the start of yesterday (UTC) and publishes a StreakReset event.
func (w *StreakResetWorker) RunOnce(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStreakResetStarting)

	now := w.now().UTC()
	cutoff := StreakCutoff(now)

	affected, err := w.repo.ResetInactiveStreaks(ctx, cutoff)
	if err != nil {
		log.Error(LogMsgStreakResetFailed, "error", err)
		return 0, err
	}

	log.Info(LogMsgStreakResetCompleted, "records_affected", affected, "active_since", cutoff)

	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewStreakResetEvent(now, affected))
	}
	return affected, nil
}

// Shutdown cancels the pending timer and waits for an in-flight reset
func (w *StreakResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down streak reset worker")

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Streak reset worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Streak reset worker shutdown timeout, a reset may still be running")
		return ctx.Err()
	}
}

// StreakCutoff is the start of the UTC day before now. A character last
// active before it missed a whole day.
func StreakCutoff(now time.Time) time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -1)
}

// timeUntilNextReset is the duration until the next 00:00 UTC
func timeUntilNextReset(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
