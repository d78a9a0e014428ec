package domain

// PlayerLevelUpPayload is the event payload for player.level_up events
type PlayerLevelUpPayload struct {
	OldLevel         int   `json:"old_level"`
	NewLevel         int   `json:"new_level"`
	StatPointsGained int   `json:"stat_points_gained"`
	Timestamp        int64 `json:"timestamp"`
}

// ShadowExtractedPayload is the event payload for shadow.extracted events
type ShadowExtractedPayload struct {
	ShadowID   string `json:"shadow_id"`
	TemplateID string `json:"template_id"`
	Name       string `json:"name"`
	Rarity     Rarity `json:"rarity"`
	AreaID     string `json:"area_id"`
	Timestamp  int64  `json:"timestamp"`
}

// ShadowLevelUpPayload is the event payload for shadow.level_up events
type ShadowLevelUpPayload struct {
	ShadowID  string `json:"shadow_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Timestamp int64  `json:"timestamp"`
}

// AreaUnlockedPayload is the event payload for area.unlocked events
type AreaUnlockedPayload struct {
	AreaID    string `json:"area_id"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	Timestamp int64  `json:"timestamp"`
}

// HuntCompletedPayload is the event payload for hunt.completed events
type HuntCompletedPayload struct {
	AreaID         string   `json:"area_id"`
	ExpGained      float64  `json:"exp_gained"`
	ShadowsDropped []string `json:"shadows_dropped,omitempty"`
	Timestamp      int64    `json:"timestamp"`
}

// OfflineReconciledPayload is the event payload for offline.reconciled events
type OfflineReconciledPayload struct {
	Report    OfflineReport `json:"report"`
	Timestamp int64         `json:"timestamp"`
}
