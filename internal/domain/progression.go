package domain

// StatName identifies one of the player's allocatable attributes
type StatName string

const (
	StatStrength     StatName = "strength"
	StatAgility      StatName = "agility"
	StatIntelligence StatName = "intelligence"
	StatVitality     StatName = "vitality"
	StatSense        StatName = "sense"
)

// AllStats lists every stat name in display order
var AllStats = []StatName{StatStrength, StatAgility, StatIntelligence, StatVitality, StatSense}

// ParseStatName converts a raw string into a StatName
func ParseStatName(raw string) (StatName, bool) {
	for _, s := range AllStats {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// PlayerStats holds the player's allocatable attributes
type PlayerStats struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Intelligence int `json:"intelligence"`
	Vitality     int `json:"vitality"`
	Sense        int `json:"sense"`
}

// Ref returns a pointer to the named stat, or nil for an unknown name
func (s *PlayerStats) Ref(name StatName) *int {
	switch name {
	case StatStrength:
		return &s.Strength
	case StatAgility:
		return &s.Agility
	case StatIntelligence:
		return &s.Intelligence
	case StatVitality:
		return &s.Vitality
	case StatSense:
		return &s.Sense
	}
	return nil
}

// Total sums all stat values
func (s PlayerStats) Total() int {
	return s.Strength + s.Agility + s.Intelligence + s.Vitality + s.Sense
}

// PlayerProgress is the player's level and experience state.
// Only the progression engine mutates it.
type PlayerProgress struct {
	Name                string      `json:"name"`
	Level               int         `json:"level"`
	CurrentExp          float64     `json:"current_exp"`
	ExpToNext           float64     `json:"exp_to_next"`
	AvailableStatPoints int         `json:"available_stat_points"`
	Stats               PlayerStats `json:"stats"`
	TotalExpEarned      float64     `json:"total_exp_earned"`
}

// LevelUpResult describes what a single experience application changed
type LevelUpResult struct {
	ExpApplied       float64 `json:"exp_applied"`
	OldLevel         int     `json:"old_level"`
	NewLevel         int     `json:"new_level"`
	StatPointsGained int     `json:"stat_points_gained"`
}

// LevelsGained returns how many levels were crossed
func (r LevelUpResult) LevelsGained() int {
	return r.NewLevel - r.OldLevel
}

// LeveledUp reports whether at least one level was gained
func (r LevelUpResult) LeveledUp() bool {
	return r.NewLevel > r.OldLevel
}
