package shadow

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/progression"
)

// DefaultLevelBonus is the fraction of the base multiplier added per level above 1
const DefaultLevelBonus = 0.1

// TemplateSource resolves shadow templates
type TemplateSource interface {
	ShadowTemplateByID(id string) (domain.ShadowTemplate, bool)
}

// Config holds the shadow leveling tunables. The curve is independent of the
// player's so the two can be tuned separately.
type Config struct {
	Curve      progression.Curve
	LevelBonus float64
}

// DefaultConfig returns the standard shadow tunables
func DefaultConfig() Config {
	return Config{
		Curve:      progression.DefaultCurve(),
		LevelBonus: DefaultLevelBonus,
	}
}

// Option configures a Registry
type Option func(*Registry)

// WithIDGenerator replaces the uuid instance id source
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) {
		r.newID = gen
	}
}

// Registry owns every extracted shadow instance. It is not safe for concurrent
// use; the game service serializes access.
type Registry struct {
	cfg       Config
	templates TemplateSource
	newID     func() string
	shadows   map[string]*domain.ShadowInstance
}

// NewRegistry creates an empty registry
func NewRegistry(templates TemplateSource, cfg Config, opts ...Option) *Registry {
	r := &Registry{
		cfg:       cfg,
		templates: templates,
		newID:     uuid.NewString,
		shadows:   make(map[string]*domain.ShadowInstance),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Extract creates a level 1 idle instance of templateID and returns its id
func (r *Registry) Extract(templateID string, now time.Time) (string, error) {
	tmpl, ok := r.templates.ShadowTemplateByID(templateID)
	if !ok {
		return "", domain.NotFoundf(domain.ErrTemplateNotFound, templateID)
	}

	id := r.newID()
	for _, taken := r.shadows[id]; taken; _, taken = r.shadows[id] {
		id = r.newID()
	}

	r.shadows[id] = &domain.ShadowInstance{
		ID:                   id,
		TemplateID:           tmpl.ID,
		Level:                1,
		CurrentExp:           0,
		ExpToNext:            r.cfg.Curve.ExpToNext(1),
		CurrentExpMultiplier: tmpl.BaseExpMultiplier,
		ExtractedAt:          now,
	}
	return id, nil
}

// GainExp feeds experience to a shadow. Levels stop at the template's MaxLevel;
// experience that arrives at the cap is discarded and CurrentExp stays 0.
func (r *Registry) GainExp(id string, amount float64) (domain.ShadowLevelResult, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.ShadowLevelResult{}, fmt.Errorf("%w: shadow experience amount %v", domain.ErrInvalidInput, amount)
	}
	s, ok := r.shadows[id]
	if !ok {
		return domain.ShadowLevelResult{}, domain.NotFoundf(domain.ErrShadowNotFound, id)
	}
	tmpl, ok := r.templates.ShadowTemplateByID(s.TemplateID)
	if !ok {
		return domain.ShadowLevelResult{}, domain.NotFoundf(domain.ErrTemplateNotFound, s.TemplateID)
	}

	result := domain.ShadowLevelResult{ShadowID: id, OldLevel: s.Level}

	s.CurrentExp += amount
	for s.Level < tmpl.MaxLevel && s.CurrentExp >= s.ExpToNext {
		s.CurrentExp -= s.ExpToNext
		s.Level++
		s.ExpToNext = r.cfg.Curve.ExpToNext(s.Level)
	}
	if s.Level >= tmpl.MaxLevel {
		result.ExpDiscarded = s.CurrentExp
		s.CurrentExp = 0
	}

	result.NewLevel = s.Level
	if result.LeveledUp() {
		s.CurrentExpMultiplier = r.Multiplier(tmpl, s.Level)
	}
	return result, nil
}

// Multiplier is the exp multiplier of a template's instance at level
func (r *Registry) Multiplier(tmpl domain.ShadowTemplate, level int) float64 {
	return tmpl.BaseExpMultiplier * (1 + r.cfg.LevelBonus*float64(level-1))
}

// Get returns the live instance. Callers outside this package and the
// deployment manager treat it as read-only.
func (r *Registry) Get(id string) (*domain.ShadowInstance, bool) {
	s, ok := r.shadows[id]
	return s, ok
}

// SetDeployedArea records an instance's deployment; an empty areaID marks it idle
func (r *Registry) SetDeployedArea(id, areaID string) error {
	s, ok := r.shadows[id]
	if !ok {
		return domain.NotFoundf(domain.ErrShadowNotFound, id)
	}
	s.DeployedArea = areaID
	return nil
}

// All returns the instances ordered by extraction time, then id
func (r *Registry) All() []*domain.ShadowInstance {
	out := make([]*domain.ShadowInstance, 0, len(r.shadows))
	for _, s := range r.shadows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExtractedAt.Equal(out[j].ExtractedAt) {
			return out[i].ExtractedAt.Before(out[j].ExtractedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of owned shadows
func (r *Registry) Len() int {
	return len(r.shadows)
}

// Template returns the template of an owned instance
func (r *Registry) Template(s *domain.ShadowInstance) (domain.ShadowTemplate, bool) {
	return r.templates.ShadowTemplateByID(s.TemplateID)
}

// Export returns deep copies of every instance keyed by id
func (r *Registry) Export() map[string]*domain.ShadowInstance {
	out := make(map[string]*domain.ShadowInstance, len(r.shadows))
	for id, s := range r.shadows {
		c := *s
		out[id] = &c
	}
	return out
}

// Restore replaces the registry contents with saved instances. Derived fields
// (ExpToNext, multiplier) are recomputed from the catalog so tuning changes apply
// to old saves.
func (r *Registry) Restore(saved map[string]*domain.ShadowInstance) error {
	restored := make(map[string]*domain.ShadowInstance, len(saved))
	for id, s := range saved {
		if s == nil || s.ID != id {
			return fmt.Errorf("%w: shadow entry %q does not match its key", domain.ErrCorruptSnapshot, id)
		}
		tmpl, ok := r.templates.ShadowTemplateByID(s.TemplateID)
		if !ok {
			return fmt.Errorf("%w: shadow %q: %w", domain.ErrCorruptSnapshot, id,
				domain.NotFoundf(domain.ErrTemplateNotFound, s.TemplateID))
		}

		c := *s
		c.Level = min(max(c.Level, 1), tmpl.MaxLevel)
		if c.CurrentExp < 0 || math.IsNaN(c.CurrentExp) || c.Level == tmpl.MaxLevel {
			c.CurrentExp = 0
		}
		c.ExpToNext = r.cfg.Curve.ExpToNext(c.Level)
		c.CurrentExpMultiplier = r.Multiplier(tmpl, c.Level)
		restored[id] = &c
	}
	r.shadows = restored

	for id := range restored {
		if _, err := r.GainExp(id, 0); err != nil {
			return err
		}
	}
	return nil
}

// Reset removes every shadow
func (r *Registry) Reset() {
	r.shadows = make(map[string]*domain.ShadowInstance)
}
