package deployment

import (
	"fmt"
	"sort"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// ShadowStore is the slice of the shadow registry the manager needs
type ShadowStore interface {
	Get(id string) (*domain.ShadowInstance, bool)
	SetDeployedArea(id, areaID string) error
	All() []*domain.ShadowInstance
}

// AreaGate answers whether an area exists and whether the player may use it
type AreaGate interface {
	AreaByID(id string) (domain.Area, bool)
	IsAreaUnlocked(id string) bool
}

// Manager keeps the area -> shadows index in step with each shadow's
// DeployedArea. Both views change together inside every method.
type Manager struct {
	shadows ShadowStore
	areas   AreaGate
	index   map[string][]string
}

// NewManager creates a manager with an empty index
func NewManager(shadows ShadowStore, areas AreaGate) *Manager {
	return &Manager{
		shadows: shadows,
		areas:   areas,
		index:   make(map[string][]string),
	}
}

// Deploy assigns an idle shadow to an unlocked area
func (m *Manager) Deploy(shadowID, areaID string) error {
	s, err := m.checkDeploy(shadowID, areaID)
	if err != nil {
		return err
	}
	if s.IsDeployed() {
		return fmt.Errorf("%w: %q is in %q", domain.ErrAlreadyDeployed, shadowID, s.DeployedArea)
	}
	m.place(shadowID, areaID)
	return nil
}

// Recall returns a deployed shadow to idle
func (m *Manager) Recall(shadowID string) error {
	s, ok := m.shadows.Get(shadowID)
	if !ok {
		return domain.NotFoundf(domain.ErrShadowNotFound, shadowID)
	}
	if !s.IsDeployed() {
		return fmt.Errorf("%w: %q", domain.ErrNotDeployed, shadowID)
	}
	m.remove(shadowID, s.DeployedArea)
	return nil
}

// Reassign moves a deployed shadow to another area. Every check runs before any
// change, so a failed reassign leaves the shadow where it was.
func (m *Manager) Reassign(shadowID, newAreaID string) error {
	s, err := m.checkDeploy(shadowID, newAreaID)
	if err != nil {
		return err
	}
	if !s.IsDeployed() {
		return fmt.Errorf("%w: %q", domain.ErrNotDeployed, shadowID)
	}
	m.remove(shadowID, s.DeployedArea)
	m.place(shadowID, newAreaID)
	return nil
}

func (m *Manager) checkDeploy(shadowID, areaID string) (*domain.ShadowInstance, error) {
	s, ok := m.shadows.Get(shadowID)
	if !ok {
		return nil, domain.NotFoundf(domain.ErrShadowNotFound, shadowID)
	}
	if _, ok := m.areas.AreaByID(areaID); !ok {
		return nil, domain.NotFoundf(domain.ErrAreaNotFound, areaID)
	}
	if !m.areas.IsAreaUnlocked(areaID) {
		return nil, fmt.Errorf("%w: %q", domain.ErrAreaLocked, areaID)
	}
	return s, nil
}

func (m *Manager) place(shadowID, areaID string) {
	// Cannot fail: checkDeploy already found the shadow.
	_ = m.shadows.SetDeployedArea(shadowID, areaID)
	m.index[areaID] = append(m.index[areaID], shadowID)
}

func (m *Manager) remove(shadowID, areaID string) {
	_ = m.shadows.SetDeployedArea(shadowID, "")
	ids := m.index[areaID]
	for i, id := range ids {
		if id == shadowID {
			ids = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(m.index, areaID)
		return
	}
	m.index[areaID] = ids
}

// ShadowsInArea returns the ids deployed to areaID in deployment order
func (m *Manager) ShadowsInArea(areaID string) []string {
	ids := m.index[areaID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Index returns a copy of the full area -> shadow ids mapping. Areas with no
// shadows are absent.
func (m *Manager) Index() map[string][]string {
	out := make(map[string][]string, len(m.index))
	for area, ids := range m.index {
		c := make([]string, len(ids))
		copy(c, ids)
		out[area] = c
	}
	return out
}

// ActiveAreas returns the ids of areas holding at least one shadow, sorted
func (m *Manager) ActiveAreas() []string {
	areas := make([]string, 0, len(m.index))
	for area := range m.index {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	return areas
}

// DeployedCount returns the number of deployed shadows
func (m *Manager) DeployedCount() int {
	n := 0
	for _, ids := range m.index {
		n += len(ids)
	}
	return n
}

// Rebuild derives the index from each shadow's DeployedArea. Used when a saved
// game carries no index of its own.
func (m *Manager) Rebuild() {
	m.index = make(map[string][]string)
	for _, s := range m.shadows.All() {
		if s.IsDeployed() {
			m.index[s.DeployedArea] = append(m.index[s.DeployedArea], s.ID)
		}
	}
}

// Load installs a saved index after checking it against the shadows. Any
// disagreement means the save is corrupt.
func (m *Manager) Load(index map[string][]string) error {
	loaded := make(map[string][]string, len(index))
	seen := make(map[string]string)
	for area, ids := range index {
		if len(ids) == 0 {
			continue
		}
		if _, ok := m.areas.AreaByID(area); !ok {
			return fmt.Errorf("%w: deployment to unknown area %q", domain.ErrCorruptSnapshot, area)
		}
		for _, id := range ids {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%w: shadow %q deployed to both %q and %q", domain.ErrCorruptSnapshot, id, prev, area)
			}
			seen[id] = area
			s, ok := m.shadows.Get(id)
			if !ok {
				return fmt.Errorf("%w: deployment of unknown shadow %q", domain.ErrCorruptSnapshot, id)
			}
			if s.DeployedArea != area {
				return fmt.Errorf("%w: shadow %q records area %q but is indexed under %q",
					domain.ErrCorruptSnapshot, id, s.DeployedArea, area)
			}
		}
		loaded[area] = append([]string(nil), ids...)
	}
	for _, s := range m.shadows.All() {
		if s.IsDeployed() && seen[s.ID] != s.DeployedArea {
			return fmt.Errorf("%w: shadow %q records area %q but is not indexed",
				domain.ErrCorruptSnapshot, s.ID, s.DeployedArea)
		}
	}
	m.index = loaded
	return nil
}

// Verify panics if the index and the shadows disagree. A mismatch can only come
// from a bug in this package.
func (m *Manager) Verify() {
	indexed := 0
	for area, ids := range m.index {
		for _, id := range ids {
			s, ok := m.shadows.Get(id)
			if !ok || s.DeployedArea != area {
				panic(fmt.Sprintf("deployment index out of sync: shadow %q under area %q", id, area))
			}
			indexed++
		}
	}
	deployed := 0
	for _, s := range m.shadows.All() {
		if s.IsDeployed() {
			deployed++
		}
	}
	if deployed != indexed {
		panic(fmt.Sprintf("deployment index out of sync: %d deployed shadows, %d indexed", deployed, indexed))
	}
}

// Reset clears the index. The shadows themselves are not touched.
func (m *Manager) Reset() {
	m.index = make(map[string][]string)
}
