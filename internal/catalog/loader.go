package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/validation"
)

// templateDef is the on-disk shape of a shadow template. Multiplier and max level
// come from the rarity table unless overridden.
type templateDef struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Rarity          domain.Rarity `json:"rarity"`
	SourceAreaID    string        `json:"source_area_id"`
	Description     string        `json:"description"`
	MultiplierBonus float64       `json:"multiplier_bonus,omitempty"`
	MaxLevel        int           `json:"max_level,omitempty"`
}

// Load reads and validates the catalog compiled into the binary
func Load() (*Catalog, error) {
	return LoadFS(dataFS)
}

// MustLoad is Load that panics; the service cannot run without a catalog
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS reads the catalog from fsys. Files are checked against their JSON schemas
// before decoding, then the decoded catalog is checked as a whole by New.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	sv := validation.NewSchemaValidator()

	var areas []domain.Area
	if err := loadValidated(fsys, sv, areasFile, areasSchema, &areas); err != nil {
		return nil, err
	}

	var defs []templateDef
	if err := loadValidated(fsys, sv, shadowsFile, shadowsSchema, &defs); err != nil {
		return nil, err
	}

	var rarities map[domain.Rarity]domain.RarityConfig
	if err := loadValidated(fsys, sv, raritiesFile, raritiesSchema, &rarities); err != nil {
		return nil, err
	}

	templates := make([]domain.ShadowTemplate, 0, len(defs))
	for _, d := range defs {
		templates = append(templates, resolveTemplate(d, rarities[d.Rarity]))
	}

	return New(areas, templates, rarities)
}

func resolveTemplate(d templateDef, rc domain.RarityConfig) domain.ShadowTemplate {
	multiplier := rc.BaseExpMultiplier
	if d.MultiplierBonus > 0 {
		multiplier *= d.MultiplierBonus
	}
	maxLevel := rc.MaxLevel
	if d.MaxLevel > 0 {
		maxLevel = d.MaxLevel
	}
	return domain.ShadowTemplate{
		ID:                d.ID,
		Name:              d.Name,
		Rarity:            d.Rarity,
		BaseExpMultiplier: multiplier,
		MaxLevel:          maxLevel,
		SourceAreaID:      d.SourceAreaID,
		Description:       d.Description,
	}
}

func loadValidated(fsys fs.FS, sv validation.SchemaValidator, file, schemaFile string, target interface{}) error {
	schema, err := fs.ReadFile(fsys, schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schemaFile, err)
	}
	if err := sv.Register(schemaFile, schema); err != nil {
		return err
	}

	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", file, err)
	}
	if err := sv.Validate(schemaFile, content); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidCatalog, file, err)
	}

	if err := json.Unmarshal(content, target); err != nil {
		return fmt.Errorf("failed to parse JSON from %s: %w", file, err)
	}
	return nil
}
