package eventlog

import "time"

// Query limits
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// DefaultMemoryCapacity bounds the in-memory log used with file storage
const DefaultMemoryCapacity = 1000

// DefaultRetention is how long entries are kept before cleanup
const DefaultRetention = 7 * 24 * time.Hour

// Log messages - service events
const (
	LogMsgFailedToLogEvent = "Failed to log game event"
	LogMsgEventLogged      = "Game event logged"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType         = "type"
	LogFieldSlot         = "slot"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deletedCount"
)
