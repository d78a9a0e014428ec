package config

import "time"

// Storage drivers accepted by STORAGE_DRIVER
const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

// Log formats accepted by LOG_FORMAT
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Defaults for values not present in the environment
const (
	DefaultPort          = "8080"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = LogFormatText
	DefaultEnvironment   = "dev"
	DefaultServiceName   = "shadow-army"
	DefaultVersion       = "dev"
	DefaultLogDir        = "logs"
	DefaultStorageDriver = StorageDriverFile
	DefaultSaveDir       = "data/saves"
	DefaultSaveSlot      = "default"
	DefaultDBName        = "shadowarmy"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultSnapshotCacheTTL  = 5 * time.Minute
	DefaultSnapshotCacheSize = 16

	DefaultActivityLogCapacity  = 1000
	DefaultActivityLogRetention = 7 * 24 * time.Hour

	DefaultHuntTickInterval    = 100 * time.Millisecond
	DefaultAccrualTickInterval = time.Second
	DefaultCheckpointInterval  = 30 * time.Second
	DefaultAutosaveInterval    = 30 * time.Second

	DefaultWorkerCount     = 2
	DefaultWorkerQueueSize = 64

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Validation error messages
const (
	ErrMsgInvalidPort          = "PORT must be between 1 and 65535"
	ErrMsgInvalidStorageDriver = "STORAGE_DRIVER must be one of file, postgres"
	ErrMsgInvalidLogFormat     = "LOG_FORMAT must be one of text, json"
	ErrMsgEmptySaveSlot        = "SAVE_SLOT must not be empty"
	ErrMsgInvalidInterval      = "%s must be positive"
	ErrMsgInvalidGrowth        = "%s must be greater than 1"
	ErrMsgInvalidStatPoints    = "STAT_POINTS_PER_LEVEL must not be negative"
	ErrMsgInvalidLevelBonus    = "SHADOW_LEVEL_BONUS must not be negative"
	ErrMsgInvalidExpShare      = "SHADOW_EXP_SHARE must be between 0 and 1"
	ErrMsgInvalidMinElapsed    = "OFFLINE_MIN_ELAPSED must not be negative"
	ErrMsgInvalidCacheSize     = "SNAPSHOT_CACHE_SIZE must be at least 1"
)
