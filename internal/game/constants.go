package game

import "errors"

// DefaultSaveSlot is used when no slot is configured
const DefaultSaveSlot = "default"

// ErrNoRepository is returned by Save and Load when the service has no storage
var ErrNoRepository = errors.New("no snapshot repository configured")

// Log messages
const (
	LogMsgCommandRejected   = "Game command rejected"
	LogMsgPublishFailed     = "Failed to publish game event"
	LogMsgPlayerLeveledUp   = "Player leveled up"
	LogMsgHuntingStarted    = "Hunting started"
	LogMsgHuntingStopped    = "Hunting stopped"
	LogMsgHuntCompleted     = "Hunt cycle completed"
	LogMsgShadowExtracted   = "Shadow extracted"
	LogMsgDeploymentChanged = "Deployment changed"
	LogMsgOfflineReconciled = "Offline progress applied"
	LogMsgReconcileFailed   = "Offline reconciliation failed"
	LogMsgSaveFailed        = "Failed to save game"
	LogMsgSaved             = "Game saved"
	LogMsgLoaded            = "Game loaded"
	LogMsgNewGame           = "No save found, starting a new game"
	LogMsgGameReset         = "Game reset"
)
