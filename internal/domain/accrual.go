package domain

import "time"

// AccrualResult is what deployed shadows produced over one interval
type AccrualResult struct {
	ElapsedSeconds float64             `json:"elapsed_seconds"`
	PlayerExp      float64             `json:"player_exp"`
	ShadowExp      map[string]float64  `json:"shadow_exp"`
	PlayerLevelUp  LevelUpResult       `json:"player_level_up"`
	ShadowLevelUps []ShadowLevelResult `json:"shadow_level_ups,omitempty"`
}

// OfflineReport summarizes progress applied on resume
type OfflineReport struct {
	TimeOffline        time.Duration  `json:"time_offline"`
	Applied            bool           `json:"applied"`
	ExpGained          float64        `json:"exp_gained"`
	ShadowsLeveled     map[string]int `json:"shadows_leveled"`
	PlayerLevelsGained int            `json:"player_levels_gained"`
	AreasUnlocked      []string       `json:"areas_unlocked"`
	HuntsCompleted     int            `json:"hunts_completed"`
	ShadowsExtracted   []string       `json:"shadows_extracted,omitempty"`
}

// HunterStats summarizes the player's lifetime activity
type HunterStats struct {
	TotalHunts            int     `json:"total_hunts"`
	TotalExpGained        float64 `json:"total_exp_gained"`
	TotalShadowsExtracted int     `json:"total_shadows_extracted"`
	AreasUnlocked         int     `json:"areas_unlocked"`
	CurrentExpPerSecond   float64 `json:"current_exp_per_second"`
	TimeSpentHuntingMs    int64   `json:"time_spent_hunting_ms"`
}
