package config

// Defaults applied when the environment leaves a value unset
const (
	DefaultPort              = 8080
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = "5m"
	DefaultDBMaxConnLifetime = "30m"
	DefaultUserID            = "default-user"
	DefaultDeadLetterPath    = "logs/event_deadletter.jsonl"
	DefaultLogDir            = "logs"
	DefaultEventMaxRetries   = 5
	DefaultEventRetryDelay   = "2s"
	DefaultNotifyWorkers     = 2
	DefaultNotifyQueueSize   = 100
	DefaultCacheSize         = 1000
	DefaultCacheTTL          = "5m"
)

// Configuration file paths
const (
	ConfigPathBalance = "configs/balance.yaml"
)
