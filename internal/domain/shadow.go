package domain

import "time"

// Rarity grades shadow templates
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities lists rarities from weakest to strongest
var AllRarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// IsValid reports whether r is a known rarity
func (r Rarity) IsValid() bool {
	for _, known := range AllRarities {
		if r == known {
			return true
		}
	}
	return false
}

// RarityConfig holds per-rarity defaults for templates
type RarityConfig struct {
	BaseExpMultiplier float64 `json:"base_exp_multiplier" validate:"gt=0"`
	MaxLevel          int     `json:"max_level" validate:"gt=0"`
}

// ShadowTemplate is a static shadow definition
type ShadowTemplate struct {
	ID                string  `json:"id" validate:"required"`
	Name              string  `json:"name" validate:"required"`
	Rarity            Rarity  `json:"rarity" validate:"required,oneof=common uncommon rare epic legendary"`
	BaseExpMultiplier float64 `json:"base_exp_multiplier" validate:"gt=0"`
	MaxLevel          int     `json:"max_level" validate:"gt=0"`
	SourceAreaID      string  `json:"source_area_id" validate:"required"`
	Description       string  `json:"description"`
}

// ShadowInstance is an owned shadow. DeployedArea is empty while idle.
type ShadowInstance struct {
	ID                   string    `json:"id"`
	TemplateID           string    `json:"template_id"`
	Level                int       `json:"level"`
	CurrentExp           float64   `json:"current_exp"`
	ExpToNext            float64   `json:"exp_to_next"`
	CurrentExpMultiplier float64   `json:"current_exp_multiplier"`
	DeployedArea         string    `json:"deployed_area,omitempty"`
	ExtractedAt          time.Time `json:"extracted_at"`
}

// IsDeployed reports whether the shadow is assigned to an area
func (s *ShadowInstance) IsDeployed() bool {
	return s.DeployedArea != ""
}

// ShadowLevelResult describes the effect of feeding experience to a shadow
type ShadowLevelResult struct {
	ShadowID     string  `json:"shadow_id"`
	OldLevel     int     `json:"old_level"`
	NewLevel     int     `json:"new_level"`
	ExpDiscarded float64 `json:"exp_discarded,omitempty"`
}

// LeveledUp reports whether the shadow gained a level
func (r ShadowLevelResult) LeveledUp() bool {
	return r.NewLevel > r.OldLevel
}

// ShadowArmyStats summarizes the owned shadows
type ShadowArmyStats struct {
	TotalShadows      int            `json:"total_shadows"`
	DeployedShadows   int            `json:"deployed_shadows"`
	TotalExpPerSecond float64        `json:"total_exp_per_second"`
	ShadowsByRarity   map[Rarity]int `json:"shadows_by_rarity"`
	AverageLevel      float64        `json:"average_level"`
}
