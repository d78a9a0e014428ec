package domain

// Event type constants used for event bus subscriptions, the SSE stream and
// metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "player.level_up")
const (
	// EventTypePlayerLevelUp is published when experience pushes the player past one or more levels
	EventTypePlayerLevelUp = "player.level_up"

	// EventTypeShadowExtracted is published when a hunt completion extracts a new shadow
	EventTypeShadowExtracted = "shadow.extracted"

	// EventTypeShadowLevelUp is published when a shadow gains a level
	EventTypeShadowLevelUp = "shadow.level_up"

	// EventTypeAreaUnlocked is published when the player reaches an area's unlock level
	EventTypeAreaUnlocked = "area.unlocked"

	// EventTypeHuntCompleted is published after each completed manual hunt cycle
	EventTypeHuntCompleted = "hunt.completed"

	// EventTypeOfflineReconciled is published when offline progress was applied on resume
	EventTypeOfflineReconciled = "offline.reconciled"
)
