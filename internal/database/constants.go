package database

import "time"

// Pool tuning
const (
	// DefaultMinConnections is kept warm, capped by the configured maximum
	DefaultMinConnections int32 = 2

	ConnectTimeout    = 10 * time.Second
	HealthCheckPeriod = 30 * time.Second
)

// MigrationsDir is the embedded directory holding goose migrations
const MigrationsDir = "migrations"

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString    = "failed to parse connection string"
	ErrMsgFailedToCreatePool         = "failed to create connection pool"
	ErrMsgFailedToPingDatabase       = "failed to ping database"
	ErrMsgFailedToLoadMigrations     = "failed to load migrations"
	ErrMsgFailedToApplyMigrations    = "failed to apply migrations"
	ErrMsgFailedToRollbackMigration  = "failed to roll back migration"
	ErrMsgFailedToReadMigrationState = "failed to read migration status"
)

// Log Messages
const (
	LogMsgConnectedToDatabase = "Connected to database"
	LogMsgMigrationApplied    = "Migration applied"
	LogMsgMigrationRolledBack = "Migration rolled back"
)
