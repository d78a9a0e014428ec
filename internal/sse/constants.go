package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WebSocketWriteTimeout bounds a single WebSocket message write
	WebSocketWriteTimeout = 5 * time.Second
)

// Event types for SSE. Game events reuse the bus type names.
const (
	EventTypePlayerLevelUp     = "player.level_up"
	EventTypeShadowExtracted   = "shadow.extracted"
	EventTypeShadowLevelUp     = "shadow.level_up"
	EventTypeAreaUnlocked      = "area.unlocked"
	EventTypeHuntCompleted     = "hunt.completed"
	EventTypeOfflineReconciled = "offline.reconciled"

	// EventTypeConnected is the first message every client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryParamTypes = "types"
)

// Log messages
const (
	LogMsgClientConnected      = "SSE client connected"
	LogMsgClientDisconnected   = "SSE client disconnected"
	LogMsgEventBroadcast       = "Broadcasting SSE event"
	LogMsgBroadcastDropped     = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError           = "Failed to write SSE event"
	LogMsgUpgradeFailed        = "WebSocket upgrade failed"
	LogMsgInvalidPayload       = "Invalid event payload for SSE"
	LogMsgSubscriberRegistered = "SSE subscriber registered for event types"
)
