package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TaskQuest_Go/internal/event"
)

// MockStreakResetter for testing
type MockStreakResetter struct {
	mock.Mock
}

func (m *MockStreakResetter) ResetInactiveStreaks(ctx context.Context, activeSince time.Time) (int64, error) {
	args := m.Called(ctx, activeSince)
	return int64(args.Int(0)), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func TestTimeUntilNextReset(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"one in the morning", time.Date(2026, 2, 2, 1, 0, 0, 0, time.UTC), 23 * time.Hour},
		{"one minute to midnight", time.Date(2026, 2, 2, 23, 59, 0, 0, time.UTC), time.Minute},
		{"exactly midnight waits a full day", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), 24 * time.Hour},
		{"other zones use UTC midnight", time.Date(2026, 2, 2, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)), 23 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeUntilNextReset(tt.now))
		})
	}
}

func TestStreakCutoff(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), StreakCutoff(now))
}

func TestStreakResetWorker_RunOnce(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStreakResetter)
	pub := &recordingPublisher{}
	now := time.Date(2024, 5, 10, 0, 0, 1, 0, time.UTC)

	repo.On("ResetInactiveStreaks", ctx, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)).Return(3, nil)

	w := NewStreakResetWorker(repo, pub)
	w.now = func() time.Time { return now }

	n, err := w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.Len(t, pub.events, 1)
	payload := pub.events[0].Payload.(event.StreakResetPayloadV1)
	assert.Equal(t, int64(3), payload.RecordsAffected)
	assert.Equal(t, now, payload.ResetTime)
}

func TestStreakResetWorker_RunOnceError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStreakResetter)
	pub := &recordingPublisher{}

	repo.On("ResetInactiveStreaks", ctx, mock.Anything).Return(0, errors.New("db down"))

	w := NewStreakResetWorker(repo, pub)
	_, err := w.RunOnce(ctx)
	assert.Error(t, err)
	assert.Empty(t, pub.events)
}

func TestStreakResetWorker_StartAndShutdown(t *testing.T) {
	w := NewStreakResetWorker(new(MockStreakResetter), nil)
	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	// Second shutdown is a no-op
	require.NoError(t, w.Shutdown(ctx))

	// Scheduling after shutdown leaves no timer running
	w.scheduleNext()
}

func TestStreakResetWorker_FiresAtMidnight(t *testing.T) {
	repo := new(MockStreakResetter)
	done := make(chan struct{})
	repo.On("ResetInactiveStreaks", mock.Anything, mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
		close(done)
	}).Once()

	w := NewStreakResetWorker(repo, nil)
	var mu sync.Mutex
	clock := time.Date(2024, 5, 9, 23, 59, 59, 950_000_000, time.UTC)
	w.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return clock
	}
	w.Start()

	// The timer is due in 50ms; by then the clock has crossed midnight
	mu.Lock()
	clock = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	mu.Unlock()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reset did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
}

func TestStreakResetWorker_ExecuteAfterShutdownIsSkipped(t *testing.T) {
	repo := new(MockStreakResetter)
	w := NewStreakResetWorker(repo, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	assert.False(t, w.execute())
	repo.AssertNotCalled(t, "ResetInactiveStreaks", mock.Anything, mock.Anything)
}

func TestStreakResetWorker_ExecuteRacingShutdown(t *testing.T) {
	for i := 0; i < 50; i++ {
		repo := new(MockStreakResetter)
		repo.On("ResetInactiveStreaks", mock.Anything, mock.Anything).Return(0, nil).Maybe()
		w := NewStreakResetWorker(repo, nil)

		var started sync.WaitGroup
		started.Add(1)
		go func() {
			defer started.Done()
			w.execute()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		require.NoError(t, w.Shutdown(ctx))
		cancel()
		started.Wait()

		// Resets are only admitted before Shutdown closes the channel
		assert.False(t, w.execute())
		w.wg.Wait()
	}
}
