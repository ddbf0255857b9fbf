package character

import "time"

// ============================================================================
// Cache Configuration
// ============================================================================

// CacheSchemaVersion is the current version of the snapshot cache schema.
// Increment this when CharacterSnapshot changes shape to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cached snapshots
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cached snapshots
const DefaultCacheTTL = 5 * time.Minute

// ============================================================================
// Messages
// ============================================================================

const (
	ErrMsgGetCharacterFailed    = "failed to get character"
	ErrMsgCreateCharacterFailed = "failed to create character"
	ErrMsgUpdateCharacterFailed = "failed to update character"
	ErrMsgBeginTxFailed         = "failed to begin transaction"
	ErrMsgCommitTxFailed        = "failed to commit transaction"

	LogMsgCharacterCreated = "Created character"
	LogMsgCharacterUpdated = "Updated character"
	LogMsgLevelChanged     = "Character level changed"
)
