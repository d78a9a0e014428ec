package domain

import (
	"slices"
	"time"
)

// ShadowDrop is one entry of an area's drop table
type ShadowDrop struct {
	ShadowTemplateID  string  `json:"shadow_template_id" validate:"required"`
	DropChancePercent float64 `json:"drop_chance_percent" validate:"gte=0,lte=100"`
}

// Area is a static hunting area definition
type Area struct {
	ID             string       `json:"id" validate:"required"`
	Name           string       `json:"name" validate:"required"`
	Description    string       `json:"description"`
	UnlockLevel    int          `json:"unlock_level" validate:"gte=1"`
	BaseExpReward  float64      `json:"base_exp_reward" validate:"gt=0"`
	HuntDurationMs int64        `json:"hunt_duration_ms" validate:"gt=0"`
	Monsters       []string     `json:"monsters"`
	DropTable      []ShadowDrop `json:"drop_table" validate:"dive"`
}

// HuntDuration returns the length of one hunt cycle
func (a Area) HuntDuration() time.Duration {
	return time.Duration(a.HuntDurationMs) * time.Millisecond
}

// BaseExpPerSecond is the passive rate a multiplier-1.0 shadow earns in this area.
// An area without a positive hunt duration earns nothing; the catalog rejects those.
func (a Area) BaseExpPerSecond() float64 {
	if a.HuntDurationMs <= 0 {
		return 0
	}
	return a.BaseExpReward / (float64(a.HuntDurationMs) / 1000)
}

// Clone returns a copy that shares no slices with a
func (a Area) Clone() Area {
	a.Monsters = slices.Clone(a.Monsters)
	a.DropTable = slices.Clone(a.DropTable)
	return a
}
