package worker

import "time"

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgQueueFull is logged when a job is dropped because the queue is full
const LogMsgQueueFull = "Worker queue full, job dropped"

// Log messages for streak reset worker operations
const (
	LogMsgStreakResetStarting      = "Streak reset starting"
	LogMsgStreakResetCompleted     = "Streak reset completed"
	LogMsgStreakResetFailed        = "Streak reset failed"
	LogMsgStreakResetStandby       = "Streak reset standby"
	LogMsgStreakResetApproach      = "Streak reset scheduled"
	LogMsgStreakResetManualTrigger = "Streak reset manually triggered"
)

// Scheduling windows for the streak reset timer
const (
	// standbyThreshold switches from the long wait to the final approach
	standbyThreshold      = 1 * time.Hour
	// approachLead is how long before the reset the standby timer wakes up
	approachLead          = 45 * time.Minute
	// earlyTriggerTolerance absorbs timer jitter around midnight
	earlyTriggerTolerance = 10 * time.Second
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
