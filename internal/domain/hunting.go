package domain

import "time"

// HuntingSession is the active manual hunt. At most one exists at a time.
type HuntingSession struct {
	AreaID     string    `json:"area_id"`
	CycleStart time.Time `json:"cycle_start"`
}

// HuntResult is the outcome of one or more completed hunt cycles. Cycles is 1 for
// a live completion and may be larger for an offline catch-up.
type HuntResult struct {
	AreaID           string        `json:"area_id"`
	Cycles           int           `json:"cycles"`
	ExpGained        float64       `json:"exp_gained"`
	LevelUp          LevelUpResult `json:"level_up"`
	ExtractedShadows []string      `json:"extracted_shadows"`
	NextCycleStart   time.Time     `json:"next_cycle_start"`
}

// HuntingStatus is the derived view of the current session
type HuntingStatus struct {
	Active          bool    `json:"active"`
	AreaID          string  `json:"area_id,omitempty"`
	ProgressPercent float64 `json:"progress_percent"`
	RemainingMs     int64   `json:"remaining_ms"`
}
