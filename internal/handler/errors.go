package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingPathParam  = "Missing %s path parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Activity log error messages
	ErrMsgActivityUnavailable = "Activity log is not configured"
	ErrMsgGetActivityFailed   = "Failed to retrieve activity"
)

// Success messages for API responses
const (
	// Hunting
	MsgHuntingStarted = "Hunting started"
	MsgHuntingStopped = "Hunting stopped"
	MsgHuntCompleted  = "Hunt completed"

	// Shadows
	MsgShadowDeployed   = "Shadow deployed"
	MsgShadowRecalled   = "Shadow recalled"
	MsgShadowReassigned = "Shadow reassigned"
	MsgShadowExtracted  = "Shadow extracted"

	// Player
	MsgStatAllocated   = "Stat point allocated"
	MsgNoStatPoints    = "No stat points available"
	MsgExperienceAdded = "Experience applied"

	// Persistence
	MsgGameSaved      = "Game saved"
	MsgGameLoaded     = "Game loaded"
	MsgGameReset      = "Game reset"
	MsgOfflineApplied = "Offline progress applied"
	MsgNothingOffline = "No offline progress to apply"
)
