// Package metrics provides centralized Prometheus metrics registry for the analysis engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "futalgo"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_total",
		Help:      "Total number of fixture simulations by status",
	}, []string{"status"})
	RankingsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rankings_total",
		Help:      "Total number of market rankings computed",
	}, []string{"market"})
	TipsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tips_generated_total",
		Help:      "Total number of tips produced by market",
	}, []string{"market"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "probability_cache_lookups_total",
		Help:      "Probability cache lookups by result",
	}, []string{"result"})
)

// Gauge metrics
var (
	CacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "probability_cache_hit_ratio",
		Help:      "Probability cache hit ratio",
	})
	FixturesInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "fixtures_in_flight",
		Help:      "Fixtures currently being analyzed",
	})
)

// Histogram metrics
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Duration of a single fixture simulation in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
	FixtureBatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fixture_batch_duration_seconds",
		Help:      "Duration of fixture batch analysis in seconds",
		Buckets:   []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(SimulationsTotal)
		registry.MustRegister(RankingsTotal)
		registry.MustRegister(TipsGeneratedTotal)
		registry.MustRegister(CacheLookupsTotal)

		registry.MustRegister(CacheHitRatio)
		registry.MustRegister(FixturesInFlight)

		registry.MustRegister(SimulationDuration)
		registry.MustRegister(FixtureBatchDuration)

		// Register ingestion metrics
		registry.MustRegister(FetchRequestsTotal)
		registry.MustRegister(FetchDuration)
		registry.MustRegister(MatchesIngestedTotal)
		registry.MustRegister(RecordsRejectedTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(StoreVersion)
		registry.MustRegister(StoreMatches)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSimulation records a fixture simulation and its duration.
// status should be one of: "success", "no_data", "failure"
func RecordSimulation(status string, durationSeconds float64) {
	SimulationsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		SimulationDuration.Observe(durationSeconds)
	}
}

// RecordRanking records a market ranking computation.
func RecordRanking(market string) {
	RankingsTotal.WithLabelValues(market).Inc()
}

// RecordTip records a generated tip.
func RecordTip(market string) {
	TipsGeneratedTotal.WithLabelValues(market).Inc()
}

// RecordCacheLookup records a probability cache lookup and the running hit ratio.
func RecordCacheLookup(hit bool, ratio float64) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
	CacheHitRatio.Set(ratio)
}

// RecordFixtureBatch records the duration of a fixture batch.
func RecordFixtureBatch(durationSeconds float64) {
	FixtureBatchDuration.Observe(durationSeconds)
}
