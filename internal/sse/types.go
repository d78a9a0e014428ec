package sse

// PlayerLevelUpPayload represents the SSE payload for player level ups
type PlayerLevelUpPayload struct {
	OldLevel         int    `json:"old_level"`
	NewLevel         int    `json:"new_level"`
	StatPointsGained int    `json:"stat_points_gained"`
	Source           string `json:"source,omitempty"` // hunt, accrual, offline or admin
}

// ShadowExtractedPayload represents the SSE payload for a new shadow
type ShadowExtractedPayload struct {
	ShadowID string `json:"shadow_id"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity"`
	AreaID   string `json:"area_id,omitempty"`
}

// ShadowLevelUpPayload represents the SSE payload for shadow level ups
type ShadowLevelUpPayload struct {
	ShadowID string `json:"shadow_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	Source   string `json:"source,omitempty"`
}

// AreaUnlockedPayload represents the SSE payload for newly reachable areas
type AreaUnlockedPayload struct {
	AreaID string `json:"area_id"`
	Name   string `json:"name"`
	Level  int    `json:"level"`
}

// HuntCompletedPayload represents the SSE payload for a finished hunt cycle
type HuntCompletedPayload struct {
	AreaID         string   `json:"area_id"`
	ExpGained      float64  `json:"exp_gained"`
	ExpDisplay     string   `json:"exp_display"`
	ShadowsDropped []string `json:"shadows_dropped,omitempty"`
}

// OfflineReconciledPayload summarizes catch-up progress for the welcome back screen
type OfflineReconciledPayload struct {
	TimeOffline        string   `json:"time_offline"`
	ExpGained          float64  `json:"exp_gained"`
	PlayerLevelsGained int      `json:"player_levels_gained"`
	AreasUnlocked      []string `json:"areas_unlocked,omitempty"`
	HuntsCompleted     int      `json:"hunts_completed"`
}
