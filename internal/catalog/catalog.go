package catalog

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// Catalog is the immutable set of areas, shadow templates, and rarity defaults.
// It is safe for concurrent reads.
type Catalog struct {
	areas         []domain.Area
	areaIndex     map[string]int
	templates     []domain.ShadowTemplate
	templateIndex map[string]int
	rarities      map[domain.Rarity]domain.RarityConfig
}

// New builds a catalog from already-resolved definitions and checks it for
// consistency: unique ids, strictly increasing unlock levels, and drop tables
// that only reference known templates.
func New(areas []domain.Area, templates []domain.ShadowTemplate, rarities map[domain.Rarity]domain.RarityConfig) (*Catalog, error) {
	v := validator.New()

	c := &Catalog{
		areas:         make([]domain.Area, len(areas)),
		areaIndex:     make(map[string]int, len(areas)),
		templates:     make([]domain.ShadowTemplate, len(templates)),
		templateIndex: make(map[string]int, len(templates)),
		rarities:      make(map[domain.Rarity]domain.RarityConfig, len(rarities)),
	}
	copy(c.areas, areas)
	copy(c.templates, templates)

	for _, r := range domain.AllRarities {
		cfg, ok := rarities[r]
		if !ok {
			return nil, fmt.Errorf("%w: missing rarity config for %s", domain.ErrInvalidCatalog, r)
		}
		if err := v.Struct(cfg); err != nil {
			return nil, fmt.Errorf("%w: rarity %s: %v", domain.ErrInvalidCatalog, r, err)
		}
		c.rarities[r] = cfg
	}

	for i, t := range c.templates {
		if err := v.Struct(t); err != nil {
			return nil, fmt.Errorf("%w: template %q: %v", domain.ErrInvalidCatalog, t.ID, err)
		}
		if _, dup := c.templateIndex[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate template %q", domain.ErrInvalidCatalog, t.ID)
		}
		c.templateIndex[t.ID] = i
	}

	for i, a := range c.areas {
		if err := v.Struct(a); err != nil {
			return nil, fmt.Errorf("%w: area %q: %v", domain.ErrInvalidCatalog, a.ID, err)
		}
		if _, dup := c.areaIndex[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate area %q", domain.ErrInvalidCatalog, a.ID)
		}
		if i > 0 && a.UnlockLevel <= c.areas[i-1].UnlockLevel {
			return nil, fmt.Errorf("%w: area %q unlock level %d does not follow %q (%d)",
				domain.ErrInvalidCatalog, a.ID, a.UnlockLevel, c.areas[i-1].ID, c.areas[i-1].UnlockLevel)
		}
		for _, drop := range a.DropTable {
			if _, ok := c.templateIndex[drop.ShadowTemplateID]; !ok {
				return nil, fmt.Errorf("%w: area %q drops unknown template %q",
					domain.ErrInvalidCatalog, a.ID, drop.ShadowTemplateID)
			}
		}
		c.areaIndex[a.ID] = i
	}

	for _, t := range c.templates {
		if _, ok := c.areaIndex[t.SourceAreaID]; !ok {
			return nil, fmt.Errorf("%w: template %q comes from unknown area %q",
				domain.ErrInvalidCatalog, t.ID, t.SourceAreaID)
		}
	}

	return c, nil
}

// AreaByID returns the area with the given id
func (c *Catalog) AreaByID(id string) (domain.Area, bool) {
	i, ok := c.areaIndex[id]
	if !ok {
		return domain.Area{}, false
	}
	return c.areas[i].Clone(), true
}

// ShadowTemplateByID returns the template with the given id
func (c *Catalog) ShadowTemplateByID(id string) (domain.ShadowTemplate, bool) {
	i, ok := c.templateIndex[id]
	if !ok {
		return domain.ShadowTemplate{}, false
	}
	return c.templates[i], true
}

// RarityConfig returns the defaults for a rarity
func (c *Catalog) RarityConfig(r domain.Rarity) (domain.RarityConfig, bool) {
	cfg, ok := c.rarities[r]
	return cfg, ok
}

// Areas returns every area ordered by unlock level
func (c *Catalog) Areas() []domain.Area {
	return cloneAreas(c.areas)
}

// ShadowTemplates returns every template in catalog order
func (c *Catalog) ShadowTemplates() []domain.ShadowTemplate {
	out := make([]domain.ShadowTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// AreasUnlockedAt returns the areas whose unlock level is at most level
func (c *Catalog) AreasUnlockedAt(level int) []domain.Area {
	return cloneAreas(c.areas[:c.unlockedCount(level)])
}

// AreaIDsUnlockedAt is AreasUnlockedAt reduced to ids
func (c *Catalog) AreaIDsUnlockedAt(level int) []string {
	n := c.unlockedCount(level)
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = c.areas[i].ID
	}
	return ids
}

// NextLockedArea returns the first area still locked at level
func (c *Catalog) NextLockedArea(level int) (domain.Area, bool) {
	n := c.unlockedCount(level)
	if n >= len(c.areas) {
		return domain.Area{}, false
	}
	return c.areas[n].Clone(), true
}

// unlockedCount relies on areas being sorted by unlock level
func (c *Catalog) unlockedCount(level int) int {
	return sort.Search(len(c.areas), func(i int) bool {
		return c.areas[i].UnlockLevel > level
	})
}

func cloneAreas(areas []domain.Area) []domain.Area {
	out := make([]domain.Area, len(areas))
	for i, a := range areas {
		out[i] = a.Clone()
	}
	return out
}
