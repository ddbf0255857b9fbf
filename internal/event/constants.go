package event

import "time"

// EventSchemaVersion is stamped on every published event
const EventSchemaVersion = "1.0"

// Metadata keys
const (
	MetadataKeyQuestType = "quest_type"
	MetadataKeyCategory  = "category"
)

const (
	// RetryQueueBufferSize bounds pending retries; overflow goes to the dead letter
	RetryQueueBufferSize = 1000

	// maxBackoffShift caps the doubling so the delay cannot overflow
	maxBackoffShift = 16

	DeadLetterFilePermissions = 0644
	deadLetterDirPermissions  = 0755

	// maxDeadLetterLine bounds a single JSONL entry when reading the file back
	maxDeadLetterLine = 1 << 20
)

// Log and error messages
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
	ErrMsgDecodePayload      = "failed to decode event payload"

	LogMsgEventDeadLettered = "Event dead-lettered"
	ErrMsgDeadLetterDir     = "failed to create dead-letter directory"
	ErrMsgDeadLetterOpen    = "failed to open dead-letter file"
	ErrMsgDeadLetterEncode  = "failed to encode dead-letter entry"
	ErrMsgDeadLetterCorrupt = "corrupt dead-letter entry"
)

// CalculateRetryDelay doubles baseDelay per attempt: attempt 1 waits
// baseDelay, attempt 2 twice that, and so on.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	shift := min(max(attempt-1, 0), maxBackoffShift)
	return baseDelay << shift
}
