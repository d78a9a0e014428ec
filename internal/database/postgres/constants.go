package postgres

// Error Messages - Snapshot Operations
const (
	ErrMsgFailedToEncodeSnapshot = "failed to encode snapshot"
	ErrMsgFailedToSaveSnapshot   = "failed to save snapshot"
	ErrMsgFailedToLoadSnapshot   = "failed to load snapshot"
	ErrMsgFailedToDeleteSnapshot = "failed to delete snapshot"
	ErrMsgFailedToListSlots      = "failed to list save slots"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToEncodePayload  = "failed to encode event payload"
	ErrMsgFailedToEncodeMetadata = "failed to encode event metadata"
	ErrMsgFailedToInsertEvent    = "failed to insert event"
	ErrMsgFailedToQueryEvents    = "failed to query events"
	ErrMsgFailedToScanEvent      = "failed to scan event"
	ErrMsgFailedToCleanupEvents  = "failed to cleanup events"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Log Messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
	LogMsgSnapshotSaved    = "Snapshot saved"
	LogMsgSnapshotDeleted  = "Snapshot deleted"
)
