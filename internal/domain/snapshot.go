package domain

import "time"

// Snapshot schema versions
const (
	// SnapshotVersionInitial carried player, shadows, deployments, unlocked areas and checkpoint
	SnapshotVersionInitial = 1

	// SnapshotVersionCurrent adds the hunting session and lifetime statistics
	SnapshotVersionCurrent = 2
)

// Checkpoint records the last wall-clock time the simulation was live
type Checkpoint struct {
	LastObserved time.Time `json:"last_observed"`
}

// Statistics holds lifetime counters
type Statistics struct {
	TotalHunts            int   `json:"total_hunts"`
	TotalShadowsExtracted int   `json:"total_shadows_extracted"`
	TimeSpentHuntingMs    int64 `json:"time_spent_hunting_ms"`
}

// Snapshot is the persisted form of a game. Catalog data is not included.
type Snapshot struct {
	Version       int                        `json:"version"`
	Player        *PlayerProgress            `json:"player"`
	Shadows       map[string]*ShadowInstance `json:"shadows"`
	Deployments   map[string][]string        `json:"deployments"`
	UnlockedAreas []string                   `json:"unlocked_areas"`
	Checkpoint    Checkpoint                 `json:"checkpoint"`
	Hunting       *HuntingSession            `json:"hunting,omitempty"`
	Statistics    *Statistics                `json:"statistics,omitempty"`
	GameStartTime time.Time                  `json:"game_start_time"`
	SavedAt       time.Time                  `json:"saved_at"`
}
