package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	ExperienceGained = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExperienceGained,
			Help: HelpTextExperienceGained,
		},
		[]string{LabelSource},
	)

	PlayerLevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayerLevelUps,
			Help: HelpTextPlayerLevelUps,
		},
	)

	ShadowsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShadowsExtracted,
			Help: HelpTextShadowsExtracted,
		},
		[]string{LabelRarity},
	)

	ShadowLevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameShadowLevelUps,
			Help: HelpTextShadowLevelUps,
		},
	)

	AreasUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAreasUnlocked,
			Help: HelpTextAreasUnlocked,
		},
	)

	HuntsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHuntsCompleted,
			Help: HelpTextHuntsCompleted,
		},
		[]string{LabelArea},
	)

	ShadowsDeployed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameShadowsDeployed,
			Help: HelpTextShadowsDeployed,
		},
	)

	OfflineReconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOfflineReconciliations,
			Help: HelpTextOfflineReconciliations,
		},
		[]string{LabelOutcome},
	)

	SnapshotSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotSaves,
			Help: HelpTextSnapshotSaves,
		},
		[]string{LabelResult},
	)
)

// RecordExperience counts experience granted to the player
func RecordExperience(source string, amount float64) {
	if amount <= 0 {
		return
	}
	ExperienceGained.WithLabelValues(source).Add(amount)
}

// RecordSnapshotSave counts a save attempt
func RecordSnapshotSave(err error) {
	if err != nil {
		SnapshotSaves.WithLabelValues(ResultFailure).Inc()
		return
	}
	SnapshotSaves.WithLabelValues(ResultSuccess).Inc()
}
