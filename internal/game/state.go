package game

import (
	"sort"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/accrual"
	"github.com/osse101/ShadowArmy_Go/internal/catalog"
	"github.com/osse101/ShadowArmy_Go/internal/deployment"
	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/hunting"
	"github.com/osse101/ShadowArmy_Go/internal/metrics"
	"github.com/osse101/ShadowArmy_Go/internal/offline"
	"github.com/osse101/ShadowArmy_Go/internal/progression"
	"github.com/osse101/ShadowArmy_Go/internal/shadow"
	"github.com/osse101/ShadowArmy_Go/internal/utils"
)

// Config holds the tunables of a game
type Config struct {
	PlayerName     string
	Progression    progression.Config
	Shadow         shadow.Config
	ShadowExpShare float64
	Offline        offline.Config
}

// DefaultConfig returns the standard tunables
func DefaultConfig() Config {
	return Config{
		PlayerName:     progression.DefaultPlayerName,
		Progression:    progression.DefaultConfig(),
		Shadow:         shadow.DefaultConfig(),
		ShadowExpShare: accrual.DefaultShadowExpShare,
		Offline:        offline.DefaultConfig(),
	}
}

// StateOption configures a State
type StateOption func(*State)

// WithRoller replaces the random source used for drop rolls
func WithRoller(roll hunting.Roller) StateOption {
	return func(s *State) {
		s.roll = roll
	}
}

// WithShadowIDs replaces the shadow instance id generator
func WithShadowIDs(gen func() string) StateOption {
	return func(s *State) {
		s.shadowOpts = append(s.shadowOpts, shadow.WithIDGenerator(gen))
	}
}

// ExperienceOutcome is a level-up result plus the areas it unlocked
type ExperienceOutcome struct {
	domain.LevelUpResult
	AreasUnlocked []string `json:"areas_unlocked,omitempty"`
}

// ShadowView is an owned shadow joined with its template
type ShadowView struct {
	domain.ShadowInstance
	Name         string        `json:"name"`
	Rarity       domain.Rarity `json:"rarity"`
	MaxLevel     int           `json:"max_level"`
	ExpPerSecond float64       `json:"exp_per_second"`
}

// State is one player's whole game: progress, shadows, deployments, the hunting
// session and the checkpoint. It is not safe for concurrent use; Service
// serializes every call.
type State struct {
	cfg        Config
	catalog    *catalog.Catalog
	engine     *progression.Engine
	roll       hunting.Roller
	shadowOpts []shadow.Option

	player      *domain.PlayerProgress
	unlocked    map[string]struct{}
	shadows     *shadow.Registry
	deployments *deployment.Manager
	hunting     *hunting.Machine
	accrual     *accrual.Simulator
	offline     *offline.Reconciler
	checkpoint  domain.Checkpoint
	stats       domain.Statistics
	gameStart   time.Time
	lastAccrual time.Time

	// set per command
	now         time.Time
	source      string
	newlyOpened []string
	events      []event.Event
}

// NewState creates a fresh game started at now
func NewState(cat *catalog.Catalog, cfg Config, now time.Time, opts ...StateOption) *State {
	s := &State{
		cfg:     cfg,
		catalog: cat,
		engine:  progression.NewEngine(cfg.Progression),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.roll == nil {
		s.roll = hunting.NewSeededRoller(now.UnixNano())
	}

	s.shadows = shadow.NewRegistry(cat, cfg.Shadow, s.shadowOpts...)
	s.deployments = deployment.NewManager(s.shadows, s)
	s.hunting = hunting.NewMachine(s, s, s, s.roll)
	s.accrual = accrual.NewSimulator(cat, s.deployments, s.shadows, s, cfg.ShadowExpShare)
	s.offline = offline.NewReconciler(cfg.Offline, s.accrual, s.hunting)

	s.Reset(now)
	return s
}

// Reset returns the game to a level 1 player with nothing owned
func (s *State) Reset(now time.Time) {
	s.player = s.engine.NewPlayer(s.cfg.PlayerName)
	s.unlocked = make(map[string]struct{})
	for _, id := range s.catalog.AreaIDsUnlockedAt(s.player.Level) {
		s.unlocked[id] = struct{}{}
	}
	s.shadows.Reset()
	s.deployments.Reset()
	s.hunting.Stop()
	s.checkpoint = domain.Checkpoint{LastObserved: now}
	s.stats = domain.Statistics{}
	s.gameStart = now
	s.lastAccrual = now
	s.events = nil
	metrics.ShadowsDeployed.Set(0)
}

func (s *State) begin(now time.Time, source string) {
	s.now = now
	s.source = source
	s.newlyOpened = nil
}

func (s *State) emit(e event.Event) {
	s.events = append(s.events, e)
}

// Drain returns and clears the events produced since the last call
func (s *State) Drain() []event.Event {
	out := s.events
	s.events = nil
	return out
}

// AreaByID resolves a catalog area
func (s *State) AreaByID(id string) (domain.Area, bool) {
	return s.catalog.AreaByID(id)
}

// IsAreaUnlocked reports whether the player may hunt or deploy in an area
func (s *State) IsAreaUnlocked(id string) bool {
	_, ok := s.unlocked[id]
	return ok
}

// GainExperience feeds the player through the progression engine and opens
// every area the new level reaches. Hunting and accrual both land here.
func (s *State) GainExperience(amount float64) (domain.LevelUpResult, error) {
	result, err := s.engine.ApplyExperience(s.player, amount)
	if err != nil {
		return result, err
	}
	metrics.RecordExperience(s.source, amount)
	if result.LeveledUp() {
		s.emit(event.NewPlayerLevelUpEvent(result, s.source, s.now))
		s.openAreas()
	}
	return result, nil
}

// Extract creates a shadow and counts it toward the lifetime statistics
func (s *State) Extract(templateID string, now time.Time) (string, error) {
	id, err := s.shadows.Extract(templateID, now)
	if err != nil {
		return "", err
	}
	s.stats.TotalShadowsExtracted++
	tmpl, _ := s.catalog.ShadowTemplateByID(templateID)
	areaID := tmpl.SourceAreaID
	if sess, ok := s.hunting.Session(); ok {
		areaID = sess.AreaID
	}
	s.emit(event.NewShadowExtractedEvent(id, tmpl, areaID, now))
	return id, nil
}

func (s *State) openAreas() {
	for _, area := range s.catalog.AreasUnlockedAt(s.player.Level) {
		if _, ok := s.unlocked[area.ID]; ok {
			continue
		}
		s.unlocked[area.ID] = struct{}{}
		s.newlyOpened = append(s.newlyOpened, area.ID)
		s.emit(event.NewAreaUnlockedEvent(area, s.player.Level, s.now))
	}
}

func (s *State) emitShadowLevelUps(results []domain.ShadowLevelResult) {
	for _, r := range results {
		if r.LeveledUp() {
			s.emit(event.NewShadowLevelUpEvent(r, s.source, s.now))
		}
	}
}

// ApplyExperience grants experience directly
func (s *State) ApplyExperience(amount float64, now time.Time) (ExperienceOutcome, error) {
	s.begin(now, event.SourceAdmin)
	result, err := s.GainExperience(amount)
	if err != nil {
		return ExperienceOutcome{}, err
	}
	return ExperienceOutcome{LevelUpResult: result, AreasUnlocked: s.newlyOpened}, nil
}

// AllocateStatPoint spends one point; false with no error means none were available
func (s *State) AllocateStatPoint(stat domain.StatName) (bool, error) {
	return s.engine.AllocateStatPoint(s.player, stat)
}

// StartHunting begins a manual session, replacing any current one
func (s *State) StartHunting(areaID string, now time.Time) error {
	return s.hunting.Start(areaID, now)
}

// StopHunting ends the session. The partial cycle is forfeited.
func (s *State) StopHunting() {
	s.hunting.Stop()
}

// CompleteHunt finishes the current cycle immediately
func (s *State) CompleteHunt(now time.Time) (domain.HuntResult, error) {
	s.begin(now, event.SourceHunt)
	result, err := s.hunting.Complete(now)
	if err != nil {
		return result, err
	}
	s.recordHunt(result)
	return result, nil
}

// HuntTick completes the cycle if it is due. It returns nil when nothing happened.
func (s *State) HuntTick(now time.Time) (*domain.HuntResult, error) {
	if !s.hunting.Due(now) {
		return nil, nil
	}
	result, err := s.CompleteHunt(now)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *State) recordHunt(result domain.HuntResult) {
	if result.Cycles == 0 {
		return
	}
	s.stats.TotalHunts += result.Cycles
	if area, ok := s.catalog.AreaByID(result.AreaID); ok {
		s.stats.TimeSpentHuntingMs += area.HuntDurationMs * int64(result.Cycles)
	}
	s.emit(event.NewHuntCompletedEvent(result, s.source, s.now))
}

// ExtractShadow grants a shadow outside of a hunt
func (s *State) ExtractShadow(templateID string, now time.Time) (string, error) {
	s.begin(now, event.SourceAdmin)
	return s.Extract(templateID, now)
}

// GainShadowExp feeds one shadow directly
func (s *State) GainShadowExp(id string, amount float64, now time.Time) (domain.ShadowLevelResult, error) {
	s.begin(now, event.SourceAdmin)
	result, err := s.shadows.GainExp(id, amount)
	if err != nil {
		return result, err
	}
	s.emitShadowLevelUps([]domain.ShadowLevelResult{result})
	return result, nil
}

// Deploy assigns an idle shadow to an unlocked area
func (s *State) Deploy(shadowID, areaID string) error {
	if err := s.deployments.Deploy(shadowID, areaID); err != nil {
		return err
	}
	metrics.ShadowsDeployed.Set(float64(s.deployments.DeployedCount()))
	return nil
}

// Recall returns a deployed shadow to idle
func (s *State) Recall(shadowID string) error {
	if err := s.deployments.Recall(shadowID); err != nil {
		return err
	}
	metrics.ShadowsDeployed.Set(float64(s.deployments.DeployedCount()))
	return nil
}

// Reassign moves a deployed shadow to another area
func (s *State) Reassign(shadowID, areaID string) error {
	return s.deployments.Reassign(shadowID, areaID)
}

// AccrualTick credits deployed shadows for the real time since the previous tick
func (s *State) AccrualTick(now time.Time) (domain.AccrualResult, error) {
	s.begin(now, event.SourceAccrual)
	elapsed := now.Sub(s.lastAccrual)
	s.lastAccrual = now
	if elapsed <= 0 {
		return domain.AccrualResult{ShadowExp: map[string]float64{}}, nil
	}

	result, err := s.accrual.Accrue(elapsed.Seconds())
	if err != nil {
		return result, err
	}
	s.emitShadowLevelUps(result.ShadowLevelUps)
	return result, nil
}

// Checkpoint records now as the last moment the game was live
func (s *State) Checkpoint(now time.Time) {
	s.checkpoint.LastObserved = now
}

// Reconcile credits the time since the checkpoint as offline progress. Without
// hunt catch-up an active session restarts its cycle at now.
func (s *State) Reconcile(now time.Time) (domain.OfflineReport, error) {
	s.begin(now, event.SourceOffline)
	huntArea := ""
	if sess, ok := s.hunting.Session(); ok {
		huntArea = sess.AreaID
	}

	report, err := s.offline.Reconcile(&s.checkpoint, now)
	report.AreasUnlocked = s.newlyOpened
	if err != nil {
		return report, err
	}

	// Below the threshold nothing moves: accrual and the manual cycle keep running.
	if report.Applied {
		s.lastAccrual = now
		if huntArea != "" && !s.offline.Config().HuntCatchUp {
			if err := s.hunting.Start(huntArea, now); err != nil {
				s.hunting.Stop()
			}
		}
		for id, gained := range report.ShadowsLeveled {
			if sh, ok := s.shadows.Get(id); ok {
				s.emitShadowLevelUps([]domain.ShadowLevelResult{{ShadowID: id, OldLevel: sh.Level - gained, NewLevel: sh.Level}})
			}
		}
		if report.HuntsCompleted > 0 {
			s.recordHunt(domain.HuntResult{
				AreaID:           huntArea,
				Cycles:           report.HuntsCompleted,
				ExpGained:        report.ExpGained,
				ExtractedShadows: report.ShadowsExtracted,
			})
		}
		s.emit(event.NewOfflineReconciledEvent(report, now))
		metrics.OfflineReconciliations.WithLabelValues(metrics.OutcomeApplied).Inc()
	} else {
		metrics.OfflineReconciliations.WithLabelValues(metrics.OutcomeSkipped).Inc()
	}

	return report, nil
}

// Player returns a copy of the player's progress
func (s *State) Player() domain.PlayerProgress {
	return *s.player
}

// Shadow returns one owned shadow with its template details
func (s *State) Shadow(id string) (ShadowView, error) {
	sh, ok := s.shadows.Get(id)
	if !ok {
		return ShadowView{}, domain.NotFoundf(domain.ErrShadowNotFound, id)
	}
	return s.view(sh), nil
}

// Shadows returns every owned shadow in extraction order
func (s *State) Shadows() []ShadowView {
	all := s.shadows.All()
	out := make([]ShadowView, 0, len(all))
	for _, sh := range all {
		out = append(out, s.view(sh))
	}
	return out
}

func (s *State) view(sh *domain.ShadowInstance) ShadowView {
	v := ShadowView{ShadowInstance: *sh}
	if tmpl, ok := s.shadows.Template(sh); ok {
		v.Name = tmpl.Name
		v.Rarity = tmpl.Rarity
		v.MaxLevel = tmpl.MaxLevel
	}
	if area, ok := s.catalog.AreaByID(sh.DeployedArea); ok {
		v.ExpPerSecond = area.BaseExpPerSecond() * sh.CurrentExpMultiplier
	}
	return v
}

// Deployments returns a copy of the deployment index
func (s *State) Deployments() map[string][]string {
	return s.deployments.Index()
}

// UnlockedAreas returns the unlocked areas in catalog order
func (s *State) UnlockedAreas() []domain.Area {
	var out []domain.Area
	for _, area := range s.catalog.Areas() {
		if s.IsAreaUnlocked(area.ID) {
			out = append(out, area)
		}
	}
	return out
}

func (s *State) unlockedIDs() []string {
	ids := make([]string, 0, len(s.unlocked))
	for id := range s.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HuntingStatus reports the session's progress at now
func (s *State) HuntingStatus(now time.Time) domain.HuntingStatus {
	return s.hunting.Status(now)
}

// ExpPerSecond is the passive rate of all deployed shadows
func (s *State) ExpPerSecond() float64 {
	return s.accrual.ExpPerSecond()
}

// ArmyStats summarizes the owned shadows
func (s *State) ArmyStats() domain.ShadowArmyStats {
	stats := domain.ShadowArmyStats{
		TotalShadows:      s.shadows.Len(),
		DeployedShadows:   s.deployments.DeployedCount(),
		TotalExpPerSecond: s.accrual.ExpPerSecond(),
		ShadowsByRarity:   make(map[domain.Rarity]int),
	}
	levels := 0
	for _, sh := range s.shadows.All() {
		levels += sh.Level
		if tmpl, ok := s.shadows.Template(sh); ok {
			stats.ShadowsByRarity[tmpl.Rarity]++
		}
	}
	if stats.TotalShadows > 0 {
		stats.AverageLevel = utils.RoundTo(float64(levels)/float64(stats.TotalShadows), 2)
	}
	return stats
}

// HunterStats summarizes the player's lifetime activity
func (s *State) HunterStats() domain.HunterStats {
	return domain.HunterStats{
		TotalHunts:            s.stats.TotalHunts,
		TotalExpGained:        s.player.TotalExpEarned,
		TotalShadowsExtracted: s.stats.TotalShadowsExtracted,
		AreasUnlocked:         len(s.unlocked),
		CurrentExpPerSecond:   s.accrual.ExpPerSecond(),
		TimeSpentHuntingMs:    s.stats.TimeSpentHuntingMs,
	}
}

// LastCheckpoint returns the checkpoint
func (s *State) LastCheckpoint() domain.Checkpoint {
	return s.checkpoint
}

// Verify panics if internal bookkeeping has drifted
func (s *State) Verify() {
	s.deployments.Verify()
	if progression.CanLevelUp(s.player) {
		panic("player holds unresolved level-up experience")
	}
}
